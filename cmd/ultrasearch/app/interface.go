package app

import (
	"github.com/agentstation/ultrasearch/internal/appcontext"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
