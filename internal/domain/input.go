package domain

// Mode selects where a snapshot comes from.
type Mode string

const (
	// ModeDemo synthesizes random values without touching a database.
	ModeDemo Mode = "demo"
	// ModeReal probes the database named by the credentials.
	ModeReal Mode = "real"
)

// Modes lists the accepted modes in display order.
func Modes() []Mode {
	return []Mode{ModeDemo, ModeReal}
}

// Engine selects the database wire driver and probe statements.
type Engine string

const (
	EngineMySQL    Engine = "mysql"
	EnginePostgres Engine = "postgres"
)

// Engines lists the supported engines in display order.
func Engines() []Engine {
	return []Engine{EngineMySQL, EnginePostgres}
}

// Credentials identify the database to probe. Host may include ":port".
type Credentials struct {
	Host     string
	User     string
	Password string
	Database string
	Engine   Engine
}
