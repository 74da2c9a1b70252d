package pacdec

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Declarative package management for pacman"
	MsgSyncShort       = "Install declared packages and uninstall undeclared ones"
	MsgGenerateShort   = "Write the installed packages into the declarations"
	MsgAddShort        = "Declare packages under a category"
	MsgInstallShort    = "Declare packages and install them"
	MsgInstallLong     = "Install declares the packages like add, saves the declarations, then installs them."
	MsgRemoveShort     = "Comment out or delete package declarations"
	MsgUninstallShort  = "Undeclare packages and uninstall them"
	MsgUninstallLong   = "Uninstall removes the declarations like remove, saves, then uninstalls the packages."
	MsgSearchShort     = "Browse installed or available packages"
	MsgSearchLong      = "Search opens a picker over the installed packages (-e explicit only, -a everything the repositories offer) and prints the selection. With --query the list is filtered fuzzily without a picker."
	MsgRevertShort     = "Restore the files changed by the last save"
	MsgListShort       = "List declared packages or categories"
	MsgListLong        = "List prints every declared package across the declaration files, one per line. With --categories it prints category paths instead."
	MsgGenConfigShort  = "Print or write a settings file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgCancelled   = "Operation cancelled."
	MsgFileWritten = "Wrote %s"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Show the changes without writing files or running the package manager"
	MsgFlagDiff       = "Show dry run changes as a unified diff"
	MsgFlagYes        = "Answer yes to every confirmation"
	MsgFlagConfig     = "Root declaration file"
	MsgFlagConfigFile = "Settings file (TOML)"
	MsgFlagLogFile    = "Append logs to this file"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagCategory   = "Category selector, e.g. dev/languages"
	MsgFlagRevive     = "Uncomment packages that were commented out instead of adding them again"
	MsgFlagDelete     = "Delete declarations instead of commenting them out"
	MsgFlagExplicit   = "Search the explicitly installed packages"
	MsgFlagAll        = "Search every package the repositories offer"
	MsgFlagQuery      = "Filter fuzzily instead of opening the picker"
	MsgFlagCategories = "List category paths instead of packages"
	MsgFlagWrite      = "Write the settings file instead of printing it"
	MsgFlagCurrent    = "Print the effective settings instead of the defaults"
	MsgFlagOutput     = "Path written by --write (default: the settings file location)"

	// Version output
	MsgVersionFormat = "pacdec %s (commit %s, built %s)\n"
)

// Examples
const (
	MsgAddExample = `  pacdec add                       # pick packages and a category
  pacdec add ripgrep fd -c cli     # declare under cat:cli
  pacdec add aur/paru-bin --revive # uncomment if it was commented out`
	MsgRemoveExample = `  pacdec remove                    # pick from explicitly installed packages
  pacdec rm firefox --delete       # cut the declaration out`
	MsgGenConfigExample = `  pacdec genconfig                 # print commented defaults
  pacdec genconfig --write         # write to the settings file location
  pacdec genconfig --current       # print the effective settings`
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/revert-long.txt
	msgRevertLongRaw string
	MsgRevertLong    = strings.TrimSpace(msgRevertLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
