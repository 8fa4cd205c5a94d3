package enums

const (
	STORAGE_DRIVER_JSON     = "json"
	STORAGE_DRIVER_POSTGRES = "postgres"
	STORAGE_DRIVER_SQLITE   = "sqlite"
)

const (
	SESSION_MODE_PLAIN = "plain"
	SESSION_MODE_JWT   = "jwt"
)

const FILE_BUCKET_EXPORTS = "exports"
