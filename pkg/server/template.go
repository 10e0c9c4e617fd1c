package server

const statusPageTemplate = `<html>
<head>
    <title>Project Status Updated</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; line-height: 1.6; }
        .success { color: green; font-weight: bold; }
        .error { color: red; font-weight: bold; }
        .container { max-width: 800px; margin: 0 auto; }
        h1 { color: #333; }
        .button {
            display: inline-block;
            background: #4CAF50;
            color: white;
            padding: 10px 20px;
            text-decoration: none;
            border-radius: 4px;
            margin-top: 20px;
        }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Project Status Update Results</h1>
        {{if gt .Succeeded 0}}
        <p class="success">✅ Successfully updated {{.Succeeded}} project(s)!</p>
        {{else}}
        <p class="error">❌ Failed to update any projects.</p>
        {{end}}
        <p>Current time: {{.Now}}</p>

        <h2>Update Details</h2>
        <table>
            <tr>
                <th>Project</th>
                <th>Status</th>
            </tr>
            {{range .Rows}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{if .Success}}✅ Updated{{else}}❌ Failed{{end}}</td>
            </tr>
            {{end}}
        </table>

        <a href="/update-status" class="button">Update Again</a>
    </div>
</body>
</html>
`
