package cli

import (
	"fmt"

	"github.com/BBBtp/Tracker/internal/validation"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Create a category."`
	List   CategoryListCmd   `cmd:"" help:"List categories."`
	Rename CategoryRenameCmd `cmd:"" help:"Rename a category."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category; its trackers move to the default category."`
}

type CategoryAddCmd struct {
	Title string `arg:"" help:"Category title."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	if err := validation.ValidateCategoryTitle(c.Title); err != nil {
		return err
	}

	category, err := ctx.Store.FetchOrCreateCategory(c.Title)
	if err != nil {
		return err
	}

	fmt.Printf("Category %q ready\n", category.Title)
	return nil
}

type CategoryListCmd struct {
	Pinned bool `help:"Include the Pinned pseudo-category."`
}

func (c *CategoryListCmd) Run(ctx *Context) error {
	categories, err := ctx.Store.ListCategories(c.Pinned)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	for _, category := range categories {
		if category.Pinned {
			fmt.Println(pinnedStyle.Render("📌 " + category.Title))
		} else {
			fmt.Println(category.Title)
		}
	}

	return nil
}

type CategoryRenameCmd struct {
	Title    string `arg:"" help:"Current category title."`
	NewTitle string `arg:"" help:"New category title."`
}

func (c *CategoryRenameCmd) Run(ctx *Context) error {
	if err := validation.ValidateCategoryTitle(c.NewTitle); err != nil {
		return err
	}

	if err := ctx.Store.RenameCategory(c.Title, c.NewTitle); err != nil {
		return err
	}

	fmt.Printf("Renamed category %q to %q\n", c.Title, c.NewTitle)
	return nil
}

type CategoryDeleteCmd struct {
	Title string `arg:"" help:"Category title."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteCategory(c.Title); err != nil {
		return err
	}

	fmt.Printf("Deleted category %q\n", c.Title)
	return nil
}
