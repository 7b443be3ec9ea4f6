package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examforge/internal/prompts"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List subjects and prompt configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Subjects")
		fmt.Println(strings.Repeat("─", 60))
		for _, s := range prompts.Subjects() {
			cat, _ := prompts.CategoryFor(s)
			fmt.Printf("  %-22s %s\n", s, cat)
		}

		registry := prompts.NewRegistry()
		for _, cat := range []prompts.Category{prompts.CategoryBiology, prompts.CategoryChemistry} {
			keys := registry.Keys(cat)
			sort.Slice(keys, func(i, j int) bool {
				if keys[i].Type != keys[j].Type {
					return keys[i].Type < keys[j].Type
				}
				return keys[i].Difficulty < keys[j].Difficulty
			})

			fmt.Println()
			fmt.Printf("Configurations: %s\n", cat)
			fmt.Println(strings.Repeat("─", 60))
			for _, k := range keys {
				fmt.Printf("  %-18s %-8s %s\n", k.Type, k.Difficulty,
					registry.Description(string(k.Category), k.Type, k.Difficulty))
			}
		}
		return nil
	},
}
