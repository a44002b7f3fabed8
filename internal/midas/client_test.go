package midas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	t.Parallel()

	tables := map[string]string{
		"/db/NODE": `{"NODE":{"1":{"X":0,"Y":0,"Z":10},"2":{"X":100,"Y":0,"Z":10}}}`,
		"/db/ELEM": `{"ELEM":{"100":{"NODE":[1,2,0,0],"SECT":1,"ANGLE":0,"TYPE":"BEAM"}}}`,
		"/db/SECT": `{"SECT":{"1":{"SECTTYPE":"PSC","SHAPE":"1CEL"}}}`,
		"/db/GRUP": `{"GRUP":{"1":{"NAME":"Deck","E_LIST":[100]}}}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "secret", r.Header.Get("MAPI-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, ok := tables[r.URL.Path]
		require.True(t, ok, "unexpected path %s", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	snap, err := client.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Nodes, 2)
	assert.Equal(t, 10.0, snap.Nodes["1"].Z)
	require.Contains(t, snap.Elements, "100")
	assert.Equal(t, "1", snap.Elements["100"].Section)
	assert.Equal(t, "PSC", snap.Sections["1"].Type)
	assert.Equal(t, []int{100}, snap.Groups["1"].Elements)
}

func TestClientHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid MAPI key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad")
	_, err := client.Nodes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid MAPI key")
}

func TestClientContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, "k")
	_, err := client.Nodes(ctx)
	assert.Error(t, err)
}

func TestUpsertGroups(t *testing.T) {
	t.Parallel()

	var putBody struct {
		Assign map[string]groupEntry `json:"Assign"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/db/GRUP", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"GRUP":{"1":{"NAME":"Deck","E_LIST":[100]},"3":{"NAME":"Old","E_LIST":[1]}}}`))
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")
	err := client.UpsertGroups(context.Background(), map[string][]int{
		"Deck":        {100, 101}, // existing, keeps key 1
		"Pier 1_Pier": {201},      // new, gets key above max (4)
		"Empty":       {},         // skipped
	})
	require.NoError(t, err)

	require.Len(t, putBody.Assign, 2)
	assert.Equal(t, groupEntry{Name: "Deck", ElemList: []int{100, 101}}, putBody.Assign["1"])
	assert.Equal(t, groupEntry{Name: "Pier 1_Pier", ElemList: []int{201}}, putBody.Assign["4"])
}

func TestUpsertGroupsNothingToDo(t *testing.T) {
	t.Parallel()

	client := NewClient("http://invalid.local", "k")
	assert.NoError(t, client.UpsertGroups(context.Background(), nil))
}
