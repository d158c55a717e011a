package middleware

import "github.com/aretw0/espalier/pkg/ports"

// Middleware allows wrapping a RecordStore to add behavior.
// Middlewares compose: the last one applied sees calls first.
type Middleware func(ports.RecordStore) ports.RecordStore
