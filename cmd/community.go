package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"signpost/internal/community"
	"signpost/internal/config"
)

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Manage marketplace communities",
	Long:  `Provision, inspect and retire the communities the redirect engine routes traffic for.`,
}

var communityAddCmd = &cobra.Command{
	Use:   "add <ident>",
	Short: "Add a new community",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		customDomain, _ := cmd.Flags().GetString("domain")
		withStore(func(ctx context.Context, store *community.Store) error {
			c, err := store.Create(ctx, args[0], customDomain)
			if err != nil {
				return err
			}
			fmt.Printf("Created community %q\n", c.Ident)
			return nil
		})
	},
}

var communityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all communities",
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store *community.Store) error {
			communities, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(communities) == 0 {
				fmt.Println("No communities")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "IDENT\tDOMAIN\tUSE DOMAIN\tCLOSED\tDELETED")
			for _, c := range communities {
				fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\n", c.Ident, c.Domain, c.UseDomain, c.Closed, c.Deleted)
			}
			return w.Flush()
		})
	},
}

var communityCloseCmd = &cobra.Command{
	Use:   "close <ident>",
	Short: "Close a community",
	Long:  `Close a community. Its traffic is redirected to the not-found page with a closure campaign tag.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store *community.Store) error {
			if err := store.MarkClosed(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Closed community %q\n", args[0])
			return nil
		})
	},
}

var communityDeleteCmd = &cobra.Command{
	Use:   "delete <ident>",
	Short: "Delete a community",
	Long:  `Soft-delete a community. The record is kept so its traffic redirects with a deletion campaign tag instead of looking like an unknown host.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store *community.Store) error {
			if err := store.MarkDeleted(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted community %q\n", args[0])
			return nil
		})
	},
}

var communitySetDomainCmd = &cobra.Command{
	Use:   "set-domain <ident> <domain>",
	Short: "Configure a community's custom domain",
	Long: `Attach a custom domain to a community. With --pending the domain is stored
but not yet served, so subdomain traffic stays put until DNS is ready.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		pending, _ := cmd.Flags().GetBool("pending")
		withStore(func(ctx context.Context, store *community.Store) error {
			if err := store.SetDomain(ctx, args[0], args[1], !pending); err != nil {
				return err
			}
			fmt.Printf("Set domain %q for community %q (active: %t)\n", args[1], args[0], !pending)
			return nil
		})
	},
}

func init() {
	communityAddCmd.Flags().String("domain", "", "custom domain for the community")
	communitySetDomainCmd.Flags().Bool("pending", false, "store the domain without serving traffic on it yet")

	communityCmd.AddCommand(communityAddCmd)
	communityCmd.AddCommand(communityListCmd)
	communityCmd.AddCommand(communityCloseCmd)
	communityCmd.AddCommand(communityDeleteCmd)
	communityCmd.AddCommand(communitySetDomainCmd)
	rootCmd.AddCommand(communityCmd)
}

// withStore loads the config, opens the community store and runs fn against it.
func withStore(fn func(context.Context, *community.Store) error) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	store, err := community.OpenStore(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open community store")
	}
	defer store.Close()

	if err := fn(context.Background(), store); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
