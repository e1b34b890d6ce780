package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"proppilot/internal/i18n"
)

func i18nCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Translation table tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report keys missing from any language table",
		RunE: func(cmd *cobra.Command, args []string) error {
			dict := i18n.Default()
			missing := dict.MissingKeys()

			langs := make([]string, 0, len(missing))
			for lang := range missing {
				langs = append(langs, lang)
			}
			sort.Strings(langs)

			total := 0
			out := cmd.OutOrStdout()
			for _, lang := range langs {
				keys := missing[lang]
				total += len(keys)
				for _, key := range keys {
					fmt.Fprintf(out, "%-4s %s\n", lang, key)
				}
			}
			if total > 0 {
				return fmt.Errorf("%d translation keys missing", total)
			}
			fmt.Fprintf(out, "All %d languages complete\n", len(dict.Languages()))
			return nil
		},
	})
	return cmd
}
