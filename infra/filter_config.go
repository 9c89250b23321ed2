package infra

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-set/v2"
	"gopkg.in/yaml.v3"

	"github.com/checkmarble/caseview-backend/models"
)

type filterDefinitionYaml struct {
	FilterId                   string `yaml:"filterId" validate:"required"`
	BpsServiceId               string `yaml:"bpsServiceId" validate:"required"`
	BusinessKey                string `yaml:"businessKey" validate:"required"`
	Format                     string `yaml:"format" validate:"omitempty,oneof=flat hierarchical"`
	UpdateServiceId            string `yaml:"updateServiceId"`
	ExternalUserCharacteristic string `yaml:"externalUserCharacteristic"`
}

type filterConfigYaml struct {
	Filters []filterDefinitionYaml `yaml:"filters" validate:"required,min=1,unique=FilterId,dive"`
}

// FilterConfig is the registry of the filters exposed by the API. The BPS service ids it
// references, search and update services alike, are the only ones recognized when classifying
// history records, and the ones the merged data definition catalog is built from.
type FilterConfig struct {
	definitions []models.FilterDefinition
	byId        map[string]models.FilterDefinition
	serviceIds  *set.Set[string]
}

func LoadFilterConfig(path string) (FilterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FilterConfig{}, errors.Wrapf(err, "could not read filter config file %s", path)
	}
	return ParseFilterConfig(data)
}

func ParseFilterConfig(data []byte) (FilterConfig, error) {
	var raw filterConfigYaml
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return FilterConfig{}, errors.Wrap(err, "could not parse filter config")
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(raw); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fieldErrors := make(models.FieldValidationError, len(validationErrors))
			for _, fe := range validationErrors {
				fieldErrors[fe.Namespace()] = fe.Tag()
			}
			return FilterConfig{}, errors.Wrap(fieldErrors, "invalid filter config")
		}
		return FilterConfig{}, errors.Wrap(err, "invalid filter config")
	}

	definitions := make([]models.FilterDefinition, 0, len(raw.Filters))
	for _, f := range raw.Filters {
		format := models.PayloadFormat(f.Format)
		if format == "" {
			format = models.FormatFlat
		}
		definitions = append(definitions, models.FilterDefinition{
			FilterId:                   f.FilterId,
			BpsServiceId:               f.BpsServiceId,
			BusinessKey:                f.BusinessKey,
			Format:                     format,
			UpdateServiceId:            f.UpdateServiceId,
			ExternalUserCharacteristic: f.ExternalUserCharacteristic,
		})
	}
	return NewFilterConfig(definitions), nil
}

func NewFilterConfig(definitions []models.FilterDefinition) FilterConfig {
	config := FilterConfig{
		definitions: definitions,
		byId:        make(map[string]models.FilterDefinition, len(definitions)),
		serviceIds:  set.New[string](len(definitions)),
	}
	for _, d := range definitions {
		config.byId[d.FilterId] = d
		config.serviceIds.InsertSlice(d.ServiceIds())
	}
	return config
}

func (c FilterConfig) Get(filterId string) (models.FilterDefinition, error) {
	definition, ok := c.byId[filterId]
	if !ok {
		return models.FilterDefinition{}, errors.Wrapf(models.ErrUnknownFilterConfig, "filter %q", filterId)
	}
	return definition, nil
}

func (c FilterConfig) Definitions() []models.FilterDefinition {
	return c.definitions
}

// ServiceIds returns the distinct search and update service ids, in declaration order.
func (c FilterConfig) ServiceIds() []string {
	seen := set.New[string](len(c.definitions))
	ids := make([]string, 0, len(c.definitions))
	for _, d := range c.definitions {
		for _, id := range d.ServiceIds() {
			if seen.Insert(id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (c FilterConfig) IsRegisteredService(serviceId string) bool {
	return c.serviceIds != nil && c.serviceIds.Contains(serviceId)
}
