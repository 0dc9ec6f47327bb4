package askpablos

import (
	"askpablos-go/lib/restyutil"
	"askpablos-go/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("askpablos.lib.askpablos")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput dumps every proxy exchange to the given output for
// debugging. Call it before constructing clients; only clients created
// afterwards pick it up.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

func instrumentHTTP(client *resty.Client) {
	if restyInstrumentOutput != nil {
		restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
		return
	}
	telemetry.InstrumentResty(client, "askpablos/http")
}
