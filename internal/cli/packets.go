package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/vmoranv/aolachart/pkg/errors"
	"github.com/vmoranv/aolachart/pkg/packets"
)

// packetsCommand lists and searches the activity packet catalogue.
func (c *CLI) packetsCommand() *cobra.Command {
	var noCache bool
	var page int
	var search string

	cmd := &cobra.Command{
		Use:   "packets",
		Short: "List or search activity packets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}

			svc := packets.NewService(e.client)
			activities, err := svc.Activities(ctx)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeDataUnavailable, err, "could not fetch the activity list")
			}

			if search != "" {
				matches := packets.Search(activities, search)
				if len(matches) == 0 {
					return apperrors.New(apperrors.ErrCodePacketNotFound, "no packet matching %q", search)
				}
				fmt.Println(packets.FormatPage(matches, 0))
				return nil
			}

			fmt.Println(packets.FormatPage(activities, page-1))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the API response cache")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search packets by name")
	return cmd
}
