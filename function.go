// Serverless entrypoint. The relay originally shipped as a standalone
// serverless function; this registers the whole HTTP surface the same way.
package insparkdaily

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/inspark-lab/inspark-daily/internal/transport/server"
)

func init() {
	functions.HTTP("FeedService", server.HandleRequest)
}
