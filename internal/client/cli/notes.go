package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophsession/internal/client/scoped"
)

// getMultiline is swapped in tests.
var getMultiline = GetMultiline

// noteStore returns the store of the current identity once every pending
// rebind has landed.
func (a *App) noteStore(ctx context.Context) (scoped.Store, error) {
	if err := a.binder.Wait(ctx); err != nil {
		return nil, err
	}
	st, err := a.binder.Store()
	if err != nil {
		return nil, fmt.Errorf("notes unavailable: %w", err)
	}
	return st, nil
}

func (a *App) NotePut(ctx context.Context, key, text string) error {
	st, err := a.noteStore(ctx)
	if err != nil {
		return err
	}
	if text == "" {
		if text, err = getMultiline(a.reader, "Enter note text", a.out); err != nil {
			return err
		}
	}
	if err := st.Put(ctx, key, []byte(text)); err != nil {
		return err
	}
	a.printf("Saved %q in %s\n", key, st.Scope())
	return nil
}

func (a *App) NoteGet(ctx context.Context, key string) error {
	st, err := a.noteStore(ctx)
	if err != nil {
		return err
	}
	v, err := st.Get(ctx, key)
	if err != nil {
		return err
	}
	if v == nil {
		a.printf("No note %q\n", key)
		return nil
	}
	a.printf("%s\n", v)
	return nil
}

func (a *App) NoteList(ctx context.Context) error {
	st, err := a.noteStore(ctx)
	if err != nil {
		return err
	}
	keys, err := st.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		a.printf("No notes\n")
		return nil
	}
	a.printf("%s\n", strings.Join(keys, "\n"))
	return nil
}

func (a *App) NoteDelete(ctx context.Context, key string) error {
	st, err := a.noteStore(ctx)
	if err != nil {
		return err
	}
	if err := st.Delete(ctx, key); err != nil {
		return err
	}
	a.printf("Deleted %q\n", key)
	return nil
}
