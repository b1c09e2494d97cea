package logging

type Config struct {
	Format         string `env:"log_format"`
	Level          string `env:"log_level"`
	ParentFieldKey string `env:"log_parent_field"`
	Pretty         bool   `env:"log_pretty"`
	TypeFieldKey   string `env:"log_type_value"`
}

var DefaultConfig = &Config{
	Format:       "common",
	Level:        "info",
	TypeFieldKey: "devportal",
}
