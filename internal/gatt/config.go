package gatt

import (
	"github.com/mcuadros/go-defaults"
)

// CharacteristicConfig is the explicit configuration a caller passes when
// materializing a local characteristic. Field defaults mirror what peers
// expect of a plain readable attribute: read access, open security, and a
// 20-byte value budget.
type CharacteristicConfig struct {
	Read              bool          `default:"true"`
	Write             bool          `default:"false"`
	Notify            bool          `default:"false"`
	Indicate          bool          `default:"false"`
	Broadcast         bool          `default:"false"`
	Security          SecurityLevel `default:"1"` // SecurityOpen
	MaxLength         int           `default:"20"`
	VariableLength    bool          `default:"true"`
	PreferIndications bool          `default:"false"`
}

// DefaultCharacteristicConfig returns a config with all defaults applied.
func DefaultCharacteristicConfig() CharacteristicConfig {
	cfg := CharacteristicConfig{}
	defaults.SetDefaults(&cfg)
	return cfg
}

// Properties converts the config into the model's property record.
func (c CharacteristicConfig) Properties() Properties {
	return Properties{
		Read:              c.Read,
		Write:             c.Write,
		Notify:            c.Notify,
		Indicate:          c.Indicate,
		Broadcast:         c.Broadcast,
		Security:          c.Security,
		MaxLength:         c.MaxLength,
		VariableLength:    c.VariableLength,
		PreferIndications: c.PreferIndications,
	}
}
