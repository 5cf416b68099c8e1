package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/AlibekovAA/user-registry/internal/common/errors"
	"github.com/AlibekovAA/user-registry/internal/user/domain"
)

var validate = validator.New()

// Load reads a JSON array of users from path, preserving file order.
func Load(path string) ([]domain.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) ([]domain.User, error) {
	var records []domain.User
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, commonerrors.ErrInvalidSeed.WithCause(err)
	}

	users := make([]domain.User, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, commonerrors.ErrInvalidSeed.WithCause(fmt.Errorf("record %d: %w", i, err))
		}
		users = append(users, domain.NewUser(rec.ID, rec.Username, rec.Password))
	}

	return users, nil
}
