package core

import (
	"time"

	"github.com/vovakirdan/wishwall-server/internal/store"
)

// View is the externally safe projection of a wish. It carries
// everything a client may see and nothing it may not: the password
// digest stays behind in the store record.
type View struct {
	ID        string
	Name      string
	Message   string
	CreatedAt time.Time
}

func wishView(w *store.Wish) View {
	return View{
		ID:        w.ID,
		Name:      w.Name,
		Message:   w.Message,
		CreatedAt: w.CreatedAt,
	}
}
