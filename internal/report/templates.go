package report

// htmlTemplate is the main HTML template for the report
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Logging Benchmark Report</title>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f8fafc;
            --bg-card: #ffffff;
            --text-primary: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
            --accent-primary: #3b82f6;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: var(--bg-secondary);
            color: var(--text-primary);
            line-height: 1.6;
            min-height: 100vh;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 2rem;
        }

        .header {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 2rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
        }

        .header h1 {
            font-size: 1.5rem;
            margin-bottom: 0.25rem;
        }

        .header .meta {
            color: var(--text-secondary);
            font-size: 0.875rem;
        }

        .card {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 1.5rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
            overflow-x: auto;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.875rem;
        }

        th, td {
            text-align: right;
            padding: 0.5rem 0.75rem;
            border-bottom: 1px solid var(--border-color);
            white-space: nowrap;
        }

        th {
            color: var(--text-secondary);
            font-weight: 600;
            text-transform: uppercase;
            font-size: 0.75rem;
            letter-spacing: 0.05em;
        }

        th:first-child, td:first-child,
        th:nth-child(2), td:nth-child(2),
        th:nth-child(3), td:nth-child(3) {
            text-align: left;
        }

        td.lib {
            font-weight: 600;
            color: var(--accent-primary);
        }

        .empty {
            color: var(--text-secondary);
            text-align: center;
            padding: 2rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Logging Benchmark Report</h1>
            <div class="meta">
                Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}
                &middot; {{formatCount .TotalMessages}} messages per scenario
                &middot; {{formatCount .WarmupMessages}} warm-up
            </div>
        </div>

        <div class="card">
{{- if .Results}}
            <table>
                <thead>
                    <tr>
                        <th>Library</th>
                        <th>Mode</th>
                        <th>Sink</th>
                        <th>Producers</th>
                        <th>Bytes</th>
                        <th>p50</th>
                        <th>p99</th>
                        <th>p99.9</th>
                        <th>Mean</th>
                        <th>Max</th>
                        <th>Throughput</th>
                    </tr>
                </thead>
                <tbody>
{{- range .Results}}
                    <tr>
                        <td class="lib">{{.Library}}</td>
                        <td>{{if .Scenario.Async}}async{{else}}sync{{end}}</td>
                        <td>{{.Scenario.Sink}}</td>
                        <td>{{.Scenario.Producers}}</td>
                        <td>{{.Scenario.MessageBytes}}</td>
                        <td>{{formatLatency .Summary.P50}}</td>
                        <td>{{formatLatency .Summary.P99}}</td>
                        <td>{{formatLatency .Summary.P999}}</td>
                        <td>{{formatLatency .Distribution.Mean}}</td>
                        <td>{{formatLatency .Distribution.Max}}</td>
                        <td>{{formatThroughput .Throughput}}</td>
                    </tr>
{{- end}}
                </tbody>
            </table>
{{- else}}
            <div class="empty">No scenarios were run.</div>
{{- end}}
        </div>
    </div>
</body>
</html>
`
