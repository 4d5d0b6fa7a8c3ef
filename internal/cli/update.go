package cli

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/denoup/denoup/pkg/registry"
	"github.com/denoup/denoup/pkg/upgrade"
)

// errOutdated is returned by "update --check" so the process exits non-zero
// when pins are stale.
var errOutdated = errors.New("dependencies out of date")

// updateCommand creates the update command.
func (c *CLI) updateCommand() *cobra.Command {
	var (
		check       bool
		force       bool
		prerelease  bool
		interactive bool
		refresh     bool
		include     string
		backend     string
	)

	cmd := &cobra.Command{
		Use:   "update [file]",
		Short: "Upgrade pinned dependency versions to the newest release",
		Long: `Update reads the "imports" object of a deno.json or import_map.json,
looks up the newest published version for every recognized specifier and
rewrites the pins in place. Without a file argument the current directory
is searched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			var err error
			if len(args) == 1 {
				path = args[0]
			} else if path, err = findImportMap("."); err != nil {
				return err
			}

			manifest, err := loadImportMap(path)
			if err != nil {
				return err
			}
			if len(manifest.Imports) == 0 {
				printInfo("No imports in %s", path)
				return nil
			}

			cfg, err := loadConfig(filepath.Dir(path))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("include") && cfg.Update.Include != "" {
				include = cfg.Update.Include
			}
			if !cmd.Flags().Changed("force") {
				force = cfg.Update.Force
			}
			if !cmd.Flags().Changed("prerelease") {
				prerelease = cfg.Update.AllowPrerelease
			}

			resolver, err := c.newResolver(backend, refresh)
			if err != nil {
				return err
			}
			engine, err := upgrade.New(resolver, upgrade.Options{
				Include:    include,
				Minimums:   cfg.Minimums,
				Force:      force,
				Prerelease: prerelease,
				Logger:     c.Logger.Debugf,
			})
			if err != nil {
				return err
			}

			// Run against a copy so --check and --interactive can diff
			// before anything is written.
			working := maps.Clone(manifest.Imports)
			track := newProgress(c.Logger)
			spin := newSpinner(cmd.Context(), "Checking registries...")
			changed, err := engine.Run(cmd.Context(), working)
			spin.Stop()
			if err != nil {
				return err
			}
			track.done(fmt.Sprintf("Checked %d dependencies", len(manifest.Imports)))

			if !changed {
				printSuccess("All dependencies up to date")
				return nil
			}
			changes := diffImports(manifest.Imports, working)

			if check {
				printWarning("%d of %d dependencies out of date", len(changes), len(manifest.Imports))
				for _, change := range changes {
					printChange(change.Alias, change.From, change.To)
				}
				return errOutdated
			}

			if interactive {
				picked, err := pickChanges(changes)
				if err != nil {
					return err
				}
				if len(picked) == 0 {
					printInfo("Nothing selected, file unchanged")
					return nil
				}
				for _, change := range picked {
					manifest.Imports[change.Alias] = working[change.Alias]
				}
				changes = picked
			} else {
				manifest.Imports = working
			}

			if err := manifest.save(); err != nil {
				return err
			}
			printSuccess("Updated %d dependencies", len(changes))
			for _, change := range changes {
				printChange(change.Alias, change.From, change.To)
			}
			printDetail("Written to %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "report outdated dependencies without writing, exit 1 when any are found")
	cmd.Flags().BoolVar(&force, "force", false, "rewrite pins whose current version is not semver")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "allow prerelease versions as upgrade targets")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick upgrades interactively before applying")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache and hit the registries")
	cmd.Flags().StringVar(&include, "include", "", "only upgrade aliases matching this regexp")
	cmd.Flags().StringVar(&backend, "cache-backend", "file", "response cache backend: file, redis or none")

	return cmd
}

// diffImports lists the entries upgraded between two states of an imports
// object, sorted by alias. From and To carry the pinned versions when both
// specifiers classify, the full specifiers otherwise.
func diffImports(before, after map[string]string) []pendingChange {
	var changes []pendingChange
	aliases := make([]string, 0, len(before))
	for alias := range before {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)
	for _, alias := range aliases {
		old, now := before[alias], after[alias]
		if old == now {
			continue
		}
		change := pendingChange{Alias: alias, From: old, To: now}
		if u, ok := registry.Lookup(old); ok {
			if v, err := u.Version(); err == nil {
				change.From = v
			}
		}
		if u, ok := registry.Lookup(now); ok {
			if v, err := u.Version(); err == nil {
				change.To = v
			}
		}
		changes = append(changes, change)
	}
	return changes
}
