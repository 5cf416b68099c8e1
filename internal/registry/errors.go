package registry

import (
	commonerrors "github.com/AlibekovAA/user-registry/internal/common/errors"
)

var ErrInvalidArgument = commonerrors.NewDomainError(
	"INVALID_ARGUMENT",
	commonerrors.CategoryValidation,
	"Username or password is null",
)
