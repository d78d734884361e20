package cardinal

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Manage user home files."
	MsgRealiseShort     = "Store manifest sources and link their targets"
	MsgCheckShort       = "Hash manifest sources without changing anything"
	MsgStoreShort       = "Inspect and maintain the content-addressed store"
	MsgStoreInitShort   = "Create the store directory"
	MsgStoreListShort   = "List store entries"
	MsgStoreAddShort    = "Add files or directories to the store"
	MsgStoreRmShort     = "Remove entries from the store"
	MsgStorePathShort   = "Print the store directory"
	MsgStoreVerifyShort = "Re-hash entries and report modified ones"
	MsgHashShort        = "Print the content digest of files or directories"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagManifest = "Path to the manifest file"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagForce    = "Replace existing targets that do not match the store"

	// Table titles and footers
	MsgRealiseTitle     = "Realise"
	MsgRealiseDryTitle  = "Realise (dry run, nothing was changed)"
	MsgRealiseFooter    = "%d entries, %d failed"
	MsgCheckTitle       = "Check"
	MsgCheckFooter      = "%d sources, %d failed"
	MsgStoreListTitle   = "Store entries in %s"
	MsgStoreListFooter  = "%d entries"
	MsgStoreAddTitle    = "Added"
	MsgStoreVerifyTitle = "Verify"
	MsgStoreVerifyOK    = "ok"
	MsgHashTitle        = "Digests"

	// Status messages
	MsgStoreCreated = "Store ready at %s"
	MsgStoreRemoved = "Removed %s"
	MsgStoreEmpty   = "The store is empty."
	MsgExisting     = "already stored"
	MsgAdded        = "added"

	// Error messages
	MsgErrCheckFailed  = "%d of %d sources failed"
	MsgErrVerifyFailed = "%d of %d entries failed verification"
	MsgErrNoCommand    = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/realise-long.txt
	msgRealiseLongRaw string
	MsgRealiseLong    = strings.TrimSpace(msgRealiseLongRaw)

	//go:embed msgs/realise-example.txt
	msgRealiseExampleRaw string
	MsgRealiseExample    = strings.TrimRight(msgRealiseExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/store-long.txt
	msgStoreLongRaw string
	MsgStoreLong    = strings.TrimSpace(msgStoreLongRaw)

	//go:embed msgs/store-example.txt
	msgStoreExampleRaw string
	MsgStoreExample    = strings.TrimRight(msgStoreExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
