package static

var (
	Part1 = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>MABRAVO over Voronoi networks</title>
		<style>
			body { margin: 0; background: #1F1F1F; color: #d3d3d3; font-family: Consolas, monospace; }
			#container { display: flex; height: 100vh; }
			#left-container, #right-container { width: 50%; padding: 10px; box-sizing: border-box; }
			#right-container { border-left: 5px solid #757575; overflow: auto; }
			#logs { white-space: pre-wrap; word-wrap: break-word; }
			#report { white-space: pre; color: #ffd27f; }
			form input { background: #2b2b2b; color: inherit; border: 1px solid #444; padding: 5px; }
			form input[type="submit"]:hover { background: #444; cursor: pointer; }
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
                <h1>MABRAVO experiment</h1>
    `

	// Form takes the number of sites, the number of AoI vertices and the
	// seed of the page being shown.
	Form = `
                <form id="diagram-form" method="POST">
                    <label for="sites">Sites (n):</label>
                    <input type="number" id="sites" name="sites" value="%d" min="1" max="5000">
                    <label for="aoi">AoI vertices:</label>
                    <input type="number" id="aoi" name="aoi" value="%d" min="3" max="200">
                    <label for="seed">Seed (empty for a new one):</label>
                    <input type="number" id="seed" name="seed" placeholder="%d">
                    <input type="submit" value="Run">
                </form>
                <div id="report">%s</div>
    `

	Part2 = `
            </div>
            <div id="right-container">
                <h1>Logs</h1>
                <div id="logs">`

	Part3 = `
                </div>
            </div>
        </div>

        <script>
            document.getElementById('diagram-form').addEventListener('submit', function (e) {
                e.preventDefault();
                const formData = new FormData(this);
                const params = new URLSearchParams(formData).toString();

                fetch('/', {
                    method: 'POST',
                    body: params,
                    headers: {
                        'Content-Type': 'application/x-www-form-urlencoded'
                    }
                })
                .then(response => {
                    if (!response.ok) {
                        throw new Error('request failed');
                    }
                    return response.text();
                })
                .then(html => {
                    document.open();
                    document.write(html);
                    document.close();
                })
                .catch(error => {
                    console.error('Error:', error);
                });
            });
        </script>
    </body>
    </html>
    `
)
