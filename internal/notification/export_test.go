package notification

import "storefront-be/internal/state"

type stateSnapshot = state.Snapshot[State]
