// cmd/armature/main.go
//
// This is the entry point for the Armature host.
//
// Flow:
// 1. Initialize the .armature folder in the working directory
// 2. Load the document snapshot and build the command registry
//    (built-ins plus manifest plugins from .armature/commands)
// 3. Run one command directly (positional argument), or loop the menu
// 4. Save the snapshot back after every mutating run

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/armatureproject/armature/internal/command"
	"github.com/armatureproject/armature/internal/commands"
	"github.com/armatureproject/armature/internal/config"
	"github.com/armatureproject/armature/internal/doc"
	"github.com/armatureproject/armature/internal/journal"
	"github.com/armatureproject/armature/internal/logging"
	"github.com/armatureproject/armature/internal/tui"
	"github.com/armatureproject/armature/plugins"
)

func main() {
	docFlag := flag.String("doc", "", "path to the document snapshot (overrides config)")
	selectFlag := flag.String("select", "", "comma-separated element IDs forming the current selection")
	flag.Parse()

	if err := run(*docFlag, *selectFlag, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "armature: %v\n", err)
		os.Exit(1)
	}
}

func run(docOverride, selection, commandID string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	if err := config.InitArmatureDir(cwd); err != nil {
		return fmt.Errorf("initialize %s directory: %w", config.ArmatureDir, err)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogsDir())
	if err != nil {
		return err
	}
	defer logger.Close()

	var j *journal.Journal
	if cfg.Project.Journal {
		j, err = journal.Open(cfg.JournalPath())
		if err != nil {
			return err
		}
		defer j.Close()
	}

	docPath := cfg.DocumentPath()
	if docOverride != "" {
		docPath = docOverride
	}
	document, err := doc.LoadSnapshot(docPath)
	if err != nil {
		return err
	}
	if selection != "" {
		document.SetSelection(parseSelection(selection)...)
	}

	reg := command.NewRegistry()
	if err := commands.RegisterBuiltins(reg); err != nil {
		return err
	}
	if err := plugins.RegisterManifestCommands(reg, cfg.CommandsDir()); err != nil {
		return err
	}

	prompter := tui.NewPrompter()
	ctx := command.NewContext(document, prompter).WithLogger(logger).WithJournal(j)

	if commandID != "" {
		_, err := invoke(ctx, reg, j, commandID, document, docPath)
		return err
	}

	infos, err := commandInfos(reg)
	if err != nil {
		return err
	}
	var last *tui.RunSummary
	for {
		choice, err := tui.RunMenu(infos, j, last)
		if err != nil {
			return err
		}
		if choice == "" {
			return nil
		}
		summary, err := invoke(ctx, reg, j, choice, document, docPath)
		if err != nil {
			return err
		}
		last = summary
	}
}

// invoke resolves and runs one command, records it in the journal, prints
// the report, and saves the snapshot if the document may have changed.
func invoke(ctx *command.Context, reg *command.Registry, j *journal.Journal, id string, document *doc.MemDocument, docPath string) (*tui.RunSummary, error) {
	cmd, err := reg.Resolve(id, nil)
	if err != nil {
		return nil, err
	}
	info := cmd.Info()
	started := time.Now()
	result, runErr := cmd.Run(ctx)
	if runErr != nil {
		result.Status = command.StatusFailed
		result.Message = runErr.Error()
	}
	if err := j.Record(info.ID, string(result.Status), result.Message, started); err != nil {
		ctx.Log.Printf("journal: %v", err)
	}
	for _, line := range result.Report {
		fmt.Println(line)
	}
	if runErr != nil {
		return nil, fmt.Errorf("%s: %w", info.ID, runErr)
	}
	if result.Mutated() {
		if err := document.Save(docPath); err != nil {
			return nil, err
		}
	}
	return &tui.RunSummary{
		Title:   info.Title,
		Status:  result.Status,
		Message: result.Message,
		Report:  result.Report,
	}, nil
}

func commandInfos(reg *command.Registry) ([]command.Info, error) {
	ids := reg.IDs()
	infos := make([]command.Info, 0, len(ids))
	for _, id := range ids {
		cmd, err := reg.Resolve(id, nil)
		if err != nil {
			return nil, err
		}
		infos = append(infos, cmd.Info())
	}
	return infos, nil
}

func parseSelection(raw string) []doc.ElementID {
	var ids []doc.ElementID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, doc.ElementID(part))
	}
	return ids
}
