package models

type Destination string

const (
	DestinationHome     Destination = "home"
	DestinationAdmin    Destination = "admin"
	DestinationLogin    Destination = "login"
	DestinationRegister Destination = "register"
)
