package command

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/louisbranch/acrobot/internal/services/acronym/storage"
	"github.com/louisbranch/acrobot/internal/services/acronym/storage/memory"
)

func newHandler(t *testing.T) (*Handler, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewHandler(store), store
}

func handle(t *testing.T, h *Handler, input string) string {
	t.Helper()
	return h.Handle(context.Background(), input)
}

func TestHandleAddAndGet(t *testing.T) {
	h, _ := newHandler(t)

	reply := handle(t, h, "add LGTM looks good to me")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "`LGTM`") {
		t.Fatalf("add reply = %q", reply)
	}

	reply = handle(t, h, "get LGTM")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "- `looks good to me`") {
		t.Fatalf("get reply = %q", reply)
	}
}

func TestHandleAddCommaSeparatedValues(t *testing.T) {
	h, store := newHandler(t)

	handle(t, h, "add API application programming interface, another programming interface")

	result, err := store.Get(context.Background(), "API")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := []string{"application programming interface", "another programming interface"}
	if len(result.Values) != len(want) {
		t.Fatalf("values = %v, want %v", result.Values, want)
	}
	for i := range want {
		if result.Values[i] != want[i] {
			t.Fatalf("values = %v, want %v", result.Values, want)
		}
	}
}

func TestHandleAddQuotedKey(t *testing.T) {
	h, store := newHandler(t)

	handle(t, h, `add "foo bar" hello, world`)

	result, err := store.Get(context.Background(), "foo bar")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if result.Status != storage.StatusOK {
		t.Fatalf("quoted key not stored, status = %s", result.Status)
	}
}

func TestHandleAddWithoutValues(t *testing.T) {
	h, _ := newHandler(t)

	reply := handle(t, h, "add LGTM")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "Expected a key and values") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHandleGetMissingKeySuggestsSimilar(t *testing.T) {
	h, _ := newHandler(t)

	handle(t, h, "add LGTM looks good to me")

	reply := handle(t, h, "get LGT")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "Did you mean") || !strings.Contains(reply, "`LGTM`") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHandleGetMissingKeyNoSuggestions(t *testing.T) {
	h, _ := newHandler(t)

	reply := handle(t, h, "get zzzz")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "Values not found for key `zzzz`") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHandleRemove(t *testing.T) {
	h, store := newHandler(t)

	handle(t, h, "add key1 value1, value2")

	reply := handle(t, h, "remove key1 value2")
	if !strings.Contains(reply, "✅") {
		t.Fatalf("remove reply = %q", reply)
	}
	result, err := store.Get(context.Background(), "key1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(result.Values) != 1 || result.Values[0] != "value1" {
		t.Fatalf("values = %v, want [value1]", result.Values)
	}
}

func TestHandleRemoveAbsentValues(t *testing.T) {
	h, _ := newHandler(t)

	handle(t, h, "add key1 value1")

	reply := handle(t, h, "remove key1 value1, value9")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "Are you sure they all exist?") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHandleRemoveMissingKey(t *testing.T) {
	h, _ := newHandler(t)

	reply := handle(t, h, "remove ghost value1")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "Values not found for key `ghost`") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHandleDelete(t *testing.T) {
	h, _ := newHandler(t)

	handle(t, h, "add key1 value1")

	reply := handle(t, h, "delete key1")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "`key1`") {
		t.Fatalf("delete reply = %q", reply)
	}

	reply = handle(t, h, "delete key1")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "Are you sure it exists?") {
		t.Fatalf("repeat delete reply = %q", reply)
	}
}

func TestHandleList(t *testing.T) {
	h, _ := newHandler(t)

	reply := handle(t, h, "list")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "No keys found") {
		t.Fatalf("empty list reply = %q", reply)
	}

	for i := 0; i < 15; i++ {
		handle(t, h, fmt.Sprintf("add key%02d value", i))
	}

	reply = handle(t, h, "list")
	if !strings.Contains(reply, "✅") {
		t.Fatalf("list reply = %q", reply)
	}
	if got := strings.Count(reply, "- `"); got != storage.SampleLimit {
		t.Fatalf("listed %d keys, want %d", got, storage.SampleLimit)
	}
}

func TestHandleSearch(t *testing.T) {
	h, _ := newHandler(t)

	handle(t, h, "add LGTM looks good to me")

	reply := handle(t, h, "search looks good")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "`LGTM`") {
		t.Fatalf("search reply = %q", reply)
	}

	reply = handle(t, h, "search zzzz")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "No keys or values match `zzzz`") {
		t.Fatalf("search miss reply = %q", reply)
	}

	reply = handle(t, h, "search")
	if !strings.Contains(reply, "❌") {
		t.Fatalf("bare search reply = %q", reply)
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	h, _ := newHandler(t)

	reply := handle(t, h, "explode key1")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "Unknown command") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHandleEmptyInputShowsUsage(t *testing.T) {
	h, _ := newHandler(t)

	for _, input := range []string{"", "   ", "help"} {
		reply := handle(t, h, input)
		if !strings.Contains(reply, "Acrobot") || !strings.Contains(reply, "`add <key>") {
			t.Fatalf("usage reply for %q = %q", input, reply)
		}
	}
}

func TestHandleCommandIsCaseInsensitive(t *testing.T) {
	h, _ := newHandler(t)

	handle(t, h, "ADD key1 value1")

	reply := handle(t, h, "Get key1")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "- `value1`") {
		t.Fatalf("reply = %q", reply)
	}
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string) (storage.Result, error) {
	return storage.Result{}, fmt.Errorf("boom")
}
func (failingRepo) ListKeys(context.Context) (storage.Result, error) {
	return storage.Result{}, fmt.Errorf("boom")
}
func (failingRepo) Search(context.Context, string) (storage.Result, error) {
	return storage.Result{}, fmt.Errorf("boom")
}
func (failingRepo) Add(context.Context, string, []string) (storage.Result, error) {
	return storage.Result{}, fmt.Errorf("boom")
}
func (failingRepo) Remove(context.Context, string, []string) (storage.Result, error) {
	return storage.Result{}, fmt.Errorf("boom")
}
func (failingRepo) Delete(context.Context, string) (storage.Result, error) {
	return storage.Result{}, fmt.Errorf("boom")
}

func TestHandleStoreFailureIsGeneric(t *testing.T) {
	h := NewHandler(failingRepo{})

	reply := h.Handle(context.Background(), "get key1")
	if strings.Contains(reply, "boom") {
		t.Fatalf("store error leaked into reply: %q", reply)
	}
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "unexpected error") {
		t.Fatalf("reply = %q", reply)
	}
}
