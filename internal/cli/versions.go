package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/denoup/denoup/pkg/errors"
	"github.com/denoup/denoup/pkg/registry"
)

// versionsListLimit caps default output; --all lifts it.
const versionsListLimit = 20

// versionsCommand creates the versions command.
func (c *CLI) versionsCommand() *cobra.Command {
	var (
		all     bool
		refresh bool
		backend string
	)

	cmd := &cobra.Command{
		Use:   "versions <specifier>",
		Short: "List published versions for a dependency specifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := registry.Lookup(args[0])
			if !ok {
				return apperrors.New(apperrors.ErrCodeInvalidSpecifier, "no registry dialect recognizes %q", args[0])
			}

			resolver, err := c.newResolver(backend, refresh)
			if err != nil {
				return err
			}

			spin := newSpinner(cmd.Context(), "Fetching versions...")
			versions, err := resolver.All(cmd.Context(), u)
			spin.Stop()
			if err != nil {
				return err
			}

			printKeyValue("Registry", u.Kind().String())
			printKeyValue("Package", u.Name())
			printKeyValue("Published", formatCount(len(versions)))

			shown := versions
			if !all && len(shown) > versionsListLimit {
				shown = shown[:versionsListLimit]
			}
			for i, v := range shown {
				printVersion(v, i == 0)
			}
			if len(shown) < len(versions) {
				printDetail("%d more, use --all to list everything", len(versions)-len(shown))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every version instead of the newest few")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache and hit the registries")
	cmd.Flags().StringVar(&backend, "cache-backend", "file", "response cache backend: file, redis or none")

	return cmd
}

func formatCount(n int) string {
	if n == 1 {
		return "1 version"
	}
	return fmt.Sprintf("%d versions", n)
}
