// Package command parses chat commands and renders acronym replies.
package command

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	_ "github.com/louisbranch/acrobot/internal/services/acronym/i18n"
	"github.com/louisbranch/acrobot/internal/services/acronym/storage"
)

// Supported command words.
const (
	cmdAdd    = "add"
	cmdGet    = "get"
	cmdRemove = "remove"
	cmdDelete = "delete"
	cmdList   = "list"
	cmdSearch = "search"
	cmdHelp   = "help"
)

// Handler maps chat command text onto repository operations and renders
// Markdown replies.
//
// Validation outcomes surface as user-facing replies; infrastructure failures
// from the repository are logged and collapsed into a generic failure reply so
// store internals never leak into chat.
type Handler struct {
	repo    storage.Repository
	printer *message.Printer
}

// NewHandler creates a command handler over the given repository.
func NewHandler(repo storage.Repository) *Handler {
	return &Handler{
		repo:    repo,
		printer: message.NewPrinter(language.English),
	}
}

// Handle executes one command line and returns the reply text.
func (h *Handler) Handle(ctx context.Context, input string) string {
	tokens := splitTokens(strings.TrimSpace(input))
	if len(tokens) == 0 {
		return h.printer.Sprintf("reply.usage")
	}

	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	var (
		reply string
		err   error
	)
	switch cmd {
	case cmdAdd:
		reply, err = h.handleAdd(ctx, args)
	case cmdGet:
		reply, err = h.handleGet(ctx, args)
	case cmdRemove:
		reply, err = h.handleRemove(ctx, args)
	case cmdDelete:
		reply, err = h.handleDelete(ctx, args)
	case cmdList:
		reply, err = h.handleList(ctx)
	case cmdSearch:
		reply, err = h.handleSearch(ctx, args)
	case cmdHelp:
		return h.printer.Sprintf("reply.usage")
	default:
		return h.errorReply("error.unknown_command")
	}
	if err != nil {
		log.Printf("command %q failed: %v", cmd, err)
		return h.errorReply("error.internal")
	}
	return reply
}

func (h *Handler) handleAdd(ctx context.Context, args []string) (string, error) {
	key, values, err := parseKeyValues(args, true)
	if err != nil {
		return h.errorReply("error.need_values"), nil
	}

	result, err := h.repo.Add(ctx, key, values)
	if err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	if result.Status == storage.StatusNoValues {
		return h.errorReply("error.need_values"), nil
	}
	return h.printer.Sprintf("reply.added", key, bulletList(values)), nil
}

func (h *Handler) handleGet(ctx context.Context, args []string) (string, error) {
	key, _, err := parseKeyValues(args, false)
	if err != nil {
		return h.errorReply("error.bad_command"), nil
	}

	result, err := h.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get: %w", err)
	}
	if result.Status == storage.StatusOK {
		return h.printer.Sprintf("reply.get", key, codeBulletList(result.Values)), nil
	}

	// Key is absent; offer fuzzy suggestions before giving up.
	similar, err := h.repo.Search(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get suggestions: %w", err)
	}
	if similar.Status == storage.StatusOK && len(similar.Values) > 0 {
		detail := h.printer.Sprintf("error.key_not_found_suggest", key, codeBulletList(similar.Values))
		return h.printer.Sprintf("reply.error", detail), nil
	}
	return h.errorf("error.key_not_found", key), nil
}

func (h *Handler) handleRemove(ctx context.Context, args []string) (string, error) {
	key, values, err := parseKeyValues(args, true)
	if err != nil {
		return h.errorReply("error.need_values"), nil
	}

	result, err := h.repo.Remove(ctx, key, values)
	if err != nil {
		return "", fmt.Errorf("remove: %w", err)
	}
	switch result.Status {
	case storage.StatusNoKey:
		return h.errorf("error.key_not_found", key), nil
	case storage.StatusNoValues:
		return h.errorf("error.values_not_present", key), nil
	}
	return h.printer.Sprintf("reply.removed", key), nil
}

func (h *Handler) handleDelete(ctx context.Context, args []string) (string, error) {
	key, _, err := parseKeyValues(args, false)
	if err != nil {
		return h.errorReply("error.bad_command"), nil
	}

	result, err := h.repo.Delete(ctx, key)
	if err != nil {
		return "", fmt.Errorf("delete: %w", err)
	}
	if result.Status == storage.StatusNoKey {
		return h.errorf("error.delete_missing", key), nil
	}
	return h.printer.Sprintf("reply.deleted", key), nil
}

func (h *Handler) handleList(ctx context.Context) (string, error) {
	result, err := h.repo.ListKeys(ctx)
	if err != nil {
		return "", fmt.Errorf("list: %w", err)
	}
	if len(result.Values) == 0 {
		return h.errorReply("error.no_keys"), nil
	}
	return h.printer.Sprintf("reply.keys", codeBulletList(result.Values)), nil
}

func (h *Handler) handleSearch(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return h.errorReply("error.bad_command"), nil
	}
	term := strings.Join(args, " ")

	result, err := h.repo.Search(ctx, term)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if result.Status == storage.StatusNoKey {
		return h.errorf("error.no_matches", term), nil
	}
	return h.printer.Sprintf("reply.matches", term, codeBulletList(result.Values)), nil
}

func (h *Handler) errorReply(key string) string {
	return h.printer.Sprintf("reply.error", h.printer.Sprintf(key))
}

func (h *Handler) errorf(key string, args ...any) string {
	return h.printer.Sprintf("reply.error", h.printer.Sprintf(key, args...))
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func codeBulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- `"+item+"`")
	}
	return strings.Join(lines, "\n")
}
