package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// PasswordHasher hashes credentials at a fixed cost. Hashes of the same plaintext are
// computed once per process, so seeding a new workspace does not pay bcrypt again.
type PasswordHasher struct {
	cost  int
	mu    sync.Mutex
	cache map[string]string
}

// NewPasswordHasher builds a hasher. Costs outside bcrypt's range fall back to the default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost, cache: make(map[string]string)}
}

// Hash returns the bcrypt hash for plain.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if hashed, ok := h.cache[plain]; ok {
		return hashed, nil
	}
	hashed, err := HashPassword(plain, h.cost)
	if err != nil {
		return "", err
	}
	h.cache[plain] = hashed
	return hashed, nil
}

// Matches reports whether plain is the credential behind hashed.
func (h *PasswordHasher) Matches(hashed, plain string) bool {
	return ComparePassword(hashed, plain) == nil
}
