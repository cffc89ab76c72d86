package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-kitchen/database"
	"github.com/yeremiapane/restaurant-kitchen/services"
	"github.com/yeremiapane/restaurant-kitchen/utils"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}

// newCreateCookCmd bootstraps accounts; the API itself only lets logged-in cooks add cooks.
func newCreateCookCmd() *cobra.Command {
	var input services.CookCreateInput
	var years int

	cmd := &cobra.Command{
		Use:   "create-cook",
		Short: "Create a cook account from the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			input.Password2 = input.Password1
			input.YearsOfExperience = &years
			cook, err := services.NewCookService(db).Create(cmd.Context(), input)
			if err != nil {
				var verr *services.ValidationError
				if errors.As(err, &verr) {
					for field, msgs := range verr.Fields {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", field, msgs)
					}
				}
				return err
			}

			utils.InfoLogger.WithField("cook_id", cook.ID).Infof("Cook %s created", cook.User.Username)
			fmt.Fprintf(cmd.OutOrStdout(), "created cook %d (%s)\n", cook.ID, cook.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Username, "username", "", "login name")
	cmd.Flags().StringVar(&input.Password1, "password", "", "password (at least 8 characters)")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "last name")
	cmd.Flags().IntVar(&years, "years", 1, "years of experience, 1 to 59")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
