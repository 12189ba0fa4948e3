// Package client is the transport client of the BinSolver packing API.
//
// A Client sends exactly one HTTP request per call, authenticated with the
// x-api-key header, and bounds every call with the configured timeout
// (30 seconds by default). It never retries.
//
//	c, err := client.New(os.Getenv("BINSOLVER_API_KEY"))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if !c.Health(ctx) {
//	    return errors.New("binsolver unavailable")
//	}
//	resp, err := c.Pack(ctx, req)
//
// Pack returns *sdkerrors.ValidationError before any network call when the
// request is invalid, *sdkerrors.TransportError when no response arrived,
// *sdkerrors.APIError for non-2xx responses and *sdkerrors.DecodeError when a
// 2xx body is malformed.
package client
