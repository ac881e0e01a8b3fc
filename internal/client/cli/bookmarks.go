package cli

import (
	"context"
	"fmt"
)

func (a *App) List(ctx context.Context) error {
	list, err := a.client.ListBookmarks(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No bookmarks yet")
		return nil
	}

	for _, b := range list {
		fmt.Fprintf(a.out, "%s  %s  %s\n", b.ID, b.Title, b.Link)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	link, err := GetSimpleText(a.reader, "Enter link", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	description, err := GetSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	b, err := a.client.AddBookmark(ctx, title, link, description)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Added %s\n", b.ID)
	return nil
}

func (a *App) Rm(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter bookmark id to delete", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.client.DeleteBookmark(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Deleted")
	return nil
}
