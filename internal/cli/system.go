package cli

import (
	"fmt"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	done, err := ctx.Store.HasCompletedOnboarding()
	if err != nil {
		return err
	}
	if !done {
		if err := ctx.Store.SetOnboardingComplete(); err != nil {
			return err
		}
		fmt.Println("Welcome! Track habits on a weekly schedule, or one-off events.")
	}

	fmt.Printf("Storage ready at %s\n", ctx.Store.GetConfigPath())
	return nil
}
