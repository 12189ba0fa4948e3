// Binsolver is a command-line client for the BinSolver 3D bin-packing
// service, with a local mock server for development.
//
// Usage:
//
//	# Check the service
//	binsolver health
//
//	# Pack a request described in YAML or JSON
//	binsolver pack --file request.yaml
//
//	# Pack the built-in example against a local mock
//	binsolver mock --port 8080 &
//	binsolver pack --example --base-url http://localhost:8080
//
// The API key is read from --api-key or BINSOLVER_API_KEY.
package main

func main() {
	Execute()
}
