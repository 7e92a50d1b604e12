package storageconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-glossary/pkg/storage"
)

// ErrProfileInvalid indicates that a profile payload does not satisfy
// storage.ProfileJSONSchema.
var ErrProfileInvalid = errors.New("storageconfig: profile is invalid")

var (
	profileSchemaOnce sync.Once
	profileSchema     *jsonschema.Schema
	profileSchemaErr  error
)

func compiledProfileSchema() (*jsonschema.Schema, error) {
	profileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		resources := map[string]string{
			storage.ConfigSchemaID:  storage.ConfigJSONSchema,
			storage.ProfileSchemaID: storage.ProfileJSONSchema,
		}
		for id, doc := range resources {
			if err := compiler.AddResource(id, strings.NewReader(doc)); err != nil {
				profileSchemaErr = err
				return
			}
		}
		profileSchema, profileSchemaErr = compiler.Compile(storage.ProfileSchemaID)
	})
	return profileSchema, profileSchemaErr
}

// validateProfile checks a profile against storage.ProfileJSONSchema before it
// is persisted, so subscribers only ever observe well-formed definitions.
func validateProfile(profile storage.Profile) error {
	schema, err := compiledProfileSchema()
	if err != nil {
		return fmt.Errorf("storageconfig: compile profile schema: %w", err)
	}
	encoded, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProfileInvalid, err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileInvalid, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileInvalid, err)
	}
	return nil
}
