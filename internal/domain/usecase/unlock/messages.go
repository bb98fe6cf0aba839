package unlock

// User-facing messages. Exactly two failure strings exist: callers cannot
// distinguish a clean abort from a compensated one, or either from an
// infrastructure failure.
const (
	// MsgUnlocked confirms a successful or idempotent-repeat unlock
	MsgUnlocked = "Unlocked successfully!"

	// MsgGeneric is the retry prompt for every infrastructure-level failure
	MsgGeneric = "Something went wrong. Please try again."

	// MsgInsufficientCredits is the one cause-specific failure message
	MsgInsufficientCredits = "You don't have enough credits to unlock this. Purchase more credits to continue."
)
