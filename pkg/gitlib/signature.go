package gitlib

import (
	"fmt"
	"time"
)

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// String formats the signature as "Name <email>".
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}
