// Package main is the entry point for PlantGate.
//
//	@title						PlantGate - MedPlant API Gateway
//	@version					1.0
//	@description				Session-authenticated gateway in front of the MedPlant plant identification API. Browsers hold an HttpOnly session cookie; the gateway attaches the bearer token on the way upstream.
//
//	@contact.name				PlantGate Support
//	@contact.url				https://github.com/medplant/plantgate/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
package main

func main() {
	Execute()
}
