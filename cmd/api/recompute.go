package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/pkg/config"
)

// cliPrincipal is the caller recorded for maintenance commands.
var cliPrincipal = entity.Principal{UID: "cli", DisplayName: "Maintenance CLI", Role: entity.RoleAdmin}

func newRecomputeRatingCmd(cfg *config.Config) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "recompute-rating",
		Short: "Rebuild a user's rating average from their stored ratings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			agg, err := a.ratingUC.RecomputeRating(cmd.Context(), cliPrincipal, userID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: rating %.2f over %d ratings\n", agg.UserID, agg.Rating, agg.RatingCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id to recompute")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
