package communicator

import (
	"fmt"

	transport "github.com/abdul-hamid-achik/communicator/packages/http"
	applog "github.com/abdul-hamid-achik/communicator/packages/log"
	"go.uber.org/zap"
)

// fail fills in the dumps, reports e and applies the failure policy.
func (c *Communicator) fail(e *Error) error {
	e.RequestDump = transport.DumpRequest(e.Request)
	e.ResponseDump = transport.DumpResponse(e.Response)

	c.report(e)

	if c.policy == PolicyExit {
		applog.Sync(c.logger)
		c.exit(1)
	}
	return e
}

func (c *Communicator) report(e *Error) {
	if c.debug {
		fmt.Fprintln(c.out, e.RequestDump)
		if e.HasResponse() {
			fmt.Fprintln(c.out, e.ResponseDump)
		}
		return
	}

	fields := []zap.Field{
		zap.String("kind", e.Kind.String()),
		zap.String("method", e.Method),
		zap.String("url", e.URL),
		zap.String("request", e.RequestDump),
	}
	if e.HasResponse() {
		fields = append(fields, zap.Int("status", e.StatusCode), zap.String("response", e.ResponseDump))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	c.logger.Error("request failed", fields...)
}
