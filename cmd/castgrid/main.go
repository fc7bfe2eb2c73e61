// Package main provides the CLI entrypoint for castgrid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"castgrid/internal/config"
	"castgrid/internal/corpus"
	"castgrid/internal/explorer"
	"castgrid/internal/index"
	"castgrid/internal/model"
	"castgrid/internal/stats"
	"castgrid/internal/store"
)

const (
	defaultSort        = string(model.SortMostAppearances)
	defaultColorMode   = string(model.ColorGuests)
	defaultIncludeLive = true
	defaultPlotWidth   = 0
	defaultPlotHeight  = 12
)

var (
	exploreCorpusPath  string
	exploreCorpusName  string
	exploreSort        string
	exploreColorMode   string
	exploreIncludeLive bool
	exploreWikiBase    string
	exploreAudioBase   string

	importName string

	statsCorpusPath string
	statsCorpusName string
	statsPlotWidth  int
	statsPlotHeight int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "castgrid",
		Short:         "Terminal explorer for podcast episode corpora",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runExploreCmd,
	}

	rootCmd.Flags().StringVar(&exploreCorpusPath, "corpus", "", "corpus JSON file to explore")
	rootCmd.Flags().StringVar(&exploreCorpusName, "name", "", "imported corpus to explore")
	rootCmd.Flags().StringVar(&exploreSort, "sort", defaultSort, "entity sort (appearances, recent, first, alphabetical)")
	rootCmd.Flags().StringVar(&exploreColorMode, "color-mode", defaultColorMode, "cell color mode (guests, characters, chars-per-guest)")
	rootCmd.Flags().BoolVar(&exploreIncludeLive, "include-live", defaultIncludeLive, "include live episodes in the timeline")
	rootCmd.Flags().StringVar(&exploreWikiBase, "wiki-base", "", "base URL for entity wiki links")
	rootCmd.Flags().StringVar(&exploreAudioBase, "audio-base", "", "base URL for episode audio links")

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newCorporaCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "corpus", &exploreCorpusPath, fileCfg.Data.Corpus)
	applyStringConfig(cmd, "name", &exploreCorpusName, fileCfg.Data.Name)
	applyStringConfig(cmd, "sort", &exploreSort, fileCfg.Explorer.Sort)
	applyStringConfig(cmd, "color-mode", &exploreColorMode, fileCfg.Explorer.ColorMode)
	applyBoolConfig(cmd, "include-live", &exploreIncludeLive, fileCfg.Explorer.IncludeLive)
	applyStringConfig(cmd, "wiki-base", &exploreWikiBase, fileCfg.Links.WikiBase)
	applyStringConfig(cmd, "audio-base", &exploreAudioBase, fileCfg.Links.AudioBase)

	sortKey, err := parseSortKey(exploreSort)
	if err != nil {
		return err
	}
	colorMode, err := parseColorMode(exploreColorMode)
	if err != nil {
		return err
	}

	if !stdoutIsTerminal() {
		return fmt.Errorf("stdout is not a terminal; use 'castgrid stats' for a plain report")
	}

	raw, err := resolveCorpus(exploreCorpusPath, exploreCorpusName)
	if err != nil {
		return err
	}
	episodes, err := corpus.Normalize(raw)
	if err != nil {
		return fmt.Errorf("failed to normalize corpus: %w", err)
	}
	idx := index.Build(episodes, raw.GuestImages, raw.CharacterImages, raw.GuestToCharacters)
	st := stats.Compute(episodes, idx.Years)

	explorerCfg := model.ExplorerConfig{
		Sort:        sortKey,
		ColorMode:   colorMode,
		IncludeLive: exploreIncludeLive,
		WikiBase:    exploreWikiBase,
		AudioBase:   exploreAudioBase,
	}
	program := tea.NewProgram(explorer.New(episodes, idx, st, explorerCfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <corpus.json>",
		Short: "Import a corpus JSON file into the local library",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importName, "name", "", "library name for the corpus (default: file basename)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := corpus.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	// Reject unusable feeds before they reach the library.
	if _, err := corpus.Normalize(raw); err != nil {
		return fmt.Errorf("refusing to import: %w", err)
	}

	name := strings.TrimSpace(importName)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.ImportCorpus(context.Background(), name, raw); err != nil {
		return fmt.Errorf("failed to import corpus: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d episodes)\n", name, len(raw.Episodes)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCorporaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corpora",
		Short: "List imported corpora",
		Args:  cobra.NoArgs,
		RunE:  runCorporaCmd,
	}
}

func runCorporaCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	infos, err := st.ListCorpora(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list corpora: %w", err)
	}
	if len(infos) == 0 {
		logErrln("No corpora imported. Import with: castgrid import <corpus.json>")
		return nil
	}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Name,
			strconv.Itoa(info.Episodes),
			info.ImportedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	out := renderTable(
		[]string{"Name", "Episodes", "Imported"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print corpus statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCorpusPath, "corpus", "", "corpus JSON file")
	cmd.Flags().StringVar(&statsCorpusName, "name", "", "imported corpus name")
	cmd.Flags().IntVar(&statsPlotWidth, "width", defaultPlotWidth, "plot width in columns (0 = terminal width)")
	cmd.Flags().IntVar(&statsPlotHeight, "height", defaultPlotHeight, "plot height in rows")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "corpus", &statsCorpusPath, fileCfg.Data.Corpus)
	applyStringConfig(cmd, "name", &statsCorpusName, fileCfg.Data.Name)

	raw, err := resolveCorpus(statsCorpusPath, statsCorpusName)
	if err != nil {
		return err
	}
	episodes, err := corpus.Normalize(raw)
	if err != nil {
		return fmt.Errorf("failed to normalize corpus: %w", err)
	}
	idx := index.Build(episodes, raw.GuestImages, raw.CharacterImages, raw.GuestToCharacters)
	st := stats.Compute(episodes, idx.Years)

	out := cmd.OutOrStdout()
	summary := renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Episodes", strconv.Itoa(len(episodes))},
			{"Guests", strconv.Itoa(len(idx.Guests))},
			{"Characters", strconv.Itoa(len(idx.Characters))},
			{"Max episodes/year (all)", strconv.Itoa(st.MaxEpisodesPerYearWithLive)},
			{"Max episodes/year (studio)", strconv.Itoa(st.MaxEpisodesPerYearWithoutLive)},
			{"Max guests/episode", strconv.Itoa(st.MaxGuestsPerEpisode)},
			{"Max characters/episode", strconv.Itoa(st.MaxCharactersPerEpisode)},
			{"Max characters per guest", strconv.FormatFloat(st.MaxCharsPerGuestPerEpisode, 'f', 2, 64)},
		},
		[]columnAlignment{alignLeft, alignRight},
	)
	if _, err := fmt.Fprintln(out, summary); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	yearRows := make([][]string, 0, len(idx.YearAxis))
	for _, year := range idx.YearAxis {
		total, live := 0, 0
		for _, ep := range idx.Years[year] {
			total++
			if stats.IsLive(ep.Number, ep.Title) {
				live++
			}
		}
		yearRows = append(yearRows, []string{
			strconv.Itoa(year),
			strconv.Itoa(total),
			strconv.Itoa(total - live),
			strconv.Itoa(live),
		})
	}
	perYear := renderTable(
		[]string{"Year", "Episodes", "Studio", "Live"},
		yearRows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
	if _, err := fmt.Fprintln(out, perYear); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := stats.RenderYearTrend(out, idx.Years, statsPlotWidth, statsPlotHeight); err != nil {
		return fmt.Errorf("failed to render year trend: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveCorpus loads the raw corpus from a JSON file when a path is
// given, otherwise from the local library by name.
func resolveCorpus(path, name string) (model.RawCorpus, error) {
	if path != "" {
		raw, err := corpus.LoadFile(path)
		if err != nil {
			return model.RawCorpus{}, fmt.Errorf("failed to load corpus: %w", err)
		}
		return raw, nil
	}
	if name == "" {
		return model.RawCorpus{}, corpusSourceError()
	}
	st, err := openStore()
	if err != nil {
		return model.RawCorpus{}, err
	}
	defer closeStore(st)

	raw, err := st.LoadCorpus(context.Background(), name)
	if err != nil {
		return model.RawCorpus{}, fmt.Errorf("failed to load corpus %q: %w", name, err)
	}
	return raw, nil
}

func corpusSourceError() error {
	lines := []string{
		"no corpus source given",
		"Pass a file: castgrid --corpus episodes.json",
		"Or import one: castgrid import episodes.json --name main",
		"Then explore it: castgrid --name main",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func parseSortKey(s string) (model.SortKey, error) {
	switch model.SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case model.SortMostAppearances:
		return model.SortMostAppearances, nil
	case model.SortMostRecent:
		return model.SortMostRecent, nil
	case model.SortFirstAppearance:
		return model.SortFirstAppearance, nil
	case model.SortAlphabetical:
		return model.SortAlphabetical, nil
	}
	return "", fmt.Errorf("unknown sort %q (use appearances, recent, first, or alphabetical)", s)
}

func parseColorMode(s string) (model.ColorMode, error) {
	switch model.ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case model.ColorGuests:
		return model.ColorGuests, nil
	case model.ColorCharacters:
		return model.ColorCharacters, nil
	case model.ColorCharsPerGuest:
		return model.ColorCharsPerGuest, nil
	}
	return "", fmt.Errorf("unknown color mode %q (use guests, characters, or chars-per-guest)", s)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# castgrid configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# corpus = "episodes.json"      # Corpus JSON file to explore
# name = "main"                 # Imported corpus to explore

[explorer]
# sort = %q          # Entity sort: appearances, recent, first, alphabetical
# color-mode = %q         # Cell color: guests, characters, chars-per-guest
# include-live = %t          # Include live episodes in the timeline

[links]
# wiki-base = "https://example.fandom.com/wiki"
# audio-base = "https://audio.example.com/episodes"
`,
		defaultSort,
		defaultColorMode,
		defaultIncludeLive,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
