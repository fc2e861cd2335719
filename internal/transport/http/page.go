package http

import (
	"html/template"
	stdhttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The page shell is presentation glue only: it derives a room id from
// the URL fragment, opens the WebSocket, applies deltas optimistically,
// and reconnects on a fixed 2s timer. All counting semantics live in
// the relay; the page just replays the protocol.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; text-align: center; margin-top: 15vh; }
    #count { font-size: 4em; margin: 0.3em; }
    button { font-size: 2em; width: 2.5em; margin: 0.2em; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div id="count">?</div>
  <button id="minusOneBtn" disabled>-1</button>
  <button id="plusOneBtn" disabled>+1</button>
  <script>
    document.addEventListener('DOMContentLoaded', () => {
      const plusOneBtn = document.getElementById('plusOneBtn');
      const minusOneBtn = document.getElementById('minusOneBtn');
      const count = document.getElementById('count');
      const wsProtocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
      const room = window.location.hash.substring(1) || crypto.randomUUID();
      let socket = null;
      let value = null;

      function connect() {
        socket = new WebSocket(wsProtocol + '//' + window.location.host + '/ws');

        socket.onopen = () => {
          plusOneBtn.disabled = false;
          minusOneBtn.disabled = false;
          value = null;
          count.innerText = '?';
          socket.send('Subscribe: ' + room);
          window.location.hash = room;
        };

        socket.onmessage = (event) => applyDelta(event.data);

        socket.onclose = () => {
          plusOneBtn.disabled = true;
          minusOneBtn.disabled = true;
          count.innerText = '?';
          setTimeout(connect, 2000);
        };
      }

      function applyDelta(raw) {
        const delta = parseInt(raw);
        if (!isFinite(delta)) return;
        value = (value === null ? 0 : value) + delta;
        count.innerText = value.toString();
      }

      plusOneBtn.addEventListener('click', () => {
        socket.send('+1 ' + room);
        applyDelta('+1');
        if (navigator.vibrate) navigator.vibrate([20, 10, 10]);
      });

      minusOneBtn.addEventListener('click', () => {
        socket.send('-1 ' + room);
        applyDelta('-1');
        if (navigator.vibrate) navigator.vibrate([90, 20, 200]);
      });

      connect();
    });
  </script>
</body>
</html>
`

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

func pageHandler(c *gin.Context) {
	title := "Websocket Counter"
	if strings.HasPrefix(c.Request.Host, "trick") {
		title = "Trick or Treater Counter"
	}
	c.HTML(stdhttp.StatusOK, "index", gin.H{"Title": title})
}
