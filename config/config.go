package config

import (
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	EnvWizardName  = "WIZARD_NAME"
	EnvWizardLevel = "WIZARD_LEVEL"
	EnvTenantId    = "TENANT_ID"

	DefaultWizardName  = "Merlin"
	DefaultWizardLevel = 99
)

type Model struct {
	wizardName  string
	wizardLevel int
	tenantId    uuid.UUID
}

func (m Model) WizardName() string {
	return m.wizardName
}

func (m Model) WizardLevel() int {
	return m.wizardLevel
}

func (m Model) TenantId() uuid.UUID {
	return m.tenantId
}

// Load reads the process configuration from the environment. Malformed values
// are reported and replaced by their defaults.
func Load(l logrus.FieldLogger) Model {
	m := Model{
		wizardName:  DefaultWizardName,
		wizardLevel: DefaultWizardLevel,
		tenantId:    uuid.New(),
	}

	if v, ok := os.LookupEnv(EnvWizardName); ok && v != "" {
		m.wizardName = v
	}

	if v, ok := os.LookupEnv(EnvWizardLevel); ok && v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			l.WithError(err).Warnf("Invalid [%s] value [%s], using [%d].", EnvWizardLevel, v, DefaultWizardLevel)
		} else {
			m.wizardLevel = level
		}
	}

	if v, ok := os.LookupEnv(EnvTenantId); ok && v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			l.WithError(err).Warnf("Invalid [%s] value [%s], using generated tenant.", EnvTenantId, v)
		} else {
			m.tenantId = id
		}
	}
	return m
}
