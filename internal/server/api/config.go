package api

// ServerConfig represents the server subcommand's REST façade configuration.
type ServerConfig struct {
	Addr         string `help:"REST API listen address" default:":3242" env:"VHID_API_ADDR"`
	ReadTimeout  int    `help:"Request read timeout in seconds" default:"10" env:"VHID_API_READ_TIMEOUT"`
	WriteTimeout int    `help:"Response write timeout in seconds" default:"10" env:"VHID_API_WRITE_TIMEOUT"`
}
