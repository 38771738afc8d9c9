package training

import (
	"plantgen-backend/internal/apperrors"
	"plantgen-backend/internal/kselect"
	"plantgen-backend/internal/validation"
)

// minUsersForTraining is §7's InsufficientData floor for clustering.
const minUsersForTraining = 10

// Config bounds the k-selection sweep and the final multi-start fit.
type Config struct {
	KMin            int
	KMax            int
	FinalNInit      int
	SelectionMethod kselect.Method
}

// DefaultConfig matches §4.5/§4.6: sweep k in [2,12], select by silhouette,
// and multi-start the final fit with n_init=10.
func DefaultConfig() Config {
	return Config{
		KMin:            2,
		KMax:            12,
		FinalNInit:      10,
		SelectionMethod: kselect.MethodSilhouette,
	}
}

// Validate rejects a config an operator could plausibly misconfigure
// through env-driven overrides: a k-sweep with no room to search, or a
// non-positive multi-start budget.
func (c Config) Validate() error {
	v := validation.New()
	if err := v.PositiveInt(c.KMin); err != nil {
		return apperrors.InvalidInput("kMin", err.Error())
	}
	if err := v.IntRange(c.KMax, c.KMin, 1000); err != nil {
		return apperrors.InvalidInput("kMax", err.Error())
	}
	if err := v.PositiveInt(c.FinalNInit); err != nil {
		return apperrors.InvalidInput("finalNInit", err.Error())
	}
	return nil
}
