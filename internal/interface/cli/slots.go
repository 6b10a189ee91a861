package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lmerten/studiplan/internal/core/state"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Manage save slots",
	Long: `Manage the named save slots holding alternative plans.

The Default slot always exists and cannot be renamed or deleted.`,
	RunE: runSlotsList,
}

var slotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots",
	RunE:  runSlotsList,
}

var slotsNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new empty save slot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSlotsNew,
}

var slotsRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a save slot",
	Args:  cobra.ExactArgs(2),
	RunE:  runSlotsRename,
}

var slotsCopyCmd = &cobra.Command{
	Use:   "copy <name>",
	Short: "Duplicate a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlotsCopy,
}

var slotsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSlotsDelete,
}

var slotsForce bool

func init() {
	rootCmd.AddCommand(slotsCmd)
	slotsCmd.AddCommand(slotsListCmd)
	slotsCmd.AddCommand(slotsNewCmd)
	slotsCmd.AddCommand(slotsRenameCmd)
	slotsCmd.AddCommand(slotsCopyCmd)
	slotsCmd.AddCommand(slotsDeleteCmd)
	slotsDeleteCmd.Flags().BoolVar(&slotsForce, "force", false, "Delete without confirmation")
}

func openStoreOnly() (state.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}

func runSlotsList(cmd *cobra.Command, args []string) error {
	store, err := openStoreOnly()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	infos, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list save slots: %w", err)
	}

	for _, info := range infos {
		fmt.Printf("%-24s", info.Name)
		if !info.UpdatedAt.IsZero() {
			fmt.Printf("  %s (%s)", humanize.Time(info.UpdatedAt), humanize.Bytes(uint64(info.Size)))
		}
		fmt.Println()
	}
	return nil
}

func runSlotsNew(cmd *cobra.Command, args []string) error {
	store, err := openStoreOnly()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		prompt := huh.NewInput().
			Title("Name for the new save slot").
			Value(&name)
		if err := prompt.Run(); err != nil {
			return err
		}
	}
	if name == "" {
		return errors.New("slot name must not be empty")
	}

	infos, err := store.List()
	if err != nil {
		return err
	}
	for _, info := range infos {
		if info.Name == name {
			return fmt.Errorf("save slot %q already exists", name)
		}
	}

	if err := store.Write(name, state.NewSessionState()); err != nil {
		return err
	}
	fmt.Printf("Created save slot %s\n", name)
	return nil
}

func runSlotsRename(cmd *cobra.Command, args []string) error {
	store, err := openStoreOnly()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Rename(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Renamed save slot %s to %s\n", args[0], args[1])
	return nil
}

func runSlotsCopy(cmd *cobra.Command, args []string) error {
	store, err := openStoreOnly()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	newName, err := store.Duplicate(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Duplicated save slot %s as %s\n", args[0], newName)
	return nil
}

func runSlotsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStoreOnly()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	name := args[0]
	if name == state.DefaultSlot {
		return state.ErrDefaultSlot
	}

	if !slotsForce {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete save slot %q?", name)).
			Description("This cannot be undone.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Printf("Deleted save slot %s\n", name)
	return nil
}
