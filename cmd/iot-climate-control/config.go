package main

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	logLevel

	policiesFile
	configurationFile
	devicesFile

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	redisAddr
	redisPassword
	redisDB
)
