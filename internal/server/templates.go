package server

import "html/template"

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Transcribe</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2em auto; }
label { display: block; margin-top: 1em; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Video Transcription</h1>
<p>Upload a video file and get its transcription.</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form action="/transcribe" method="post" enctype="multipart/form-data">
  <label>API key or #admin-token
    <input type="password" name="key" required>
  </label>
  <label>Media file
    <input type="file" name="media" accept="video/*,audio/*" required>
  </label>
  <label>
    <input type="checkbox" name="condense"> Remove silence before transcribing
  </label>
  <label>
    <input type="checkbox" name="segment"> Split into segments with timestamps
  </label>
  <label>Segment length (minutes)
    <select name="segment_minutes">
      {{range .Minutes}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
  </label>
  <p>
    <button type="submit">Transcribe</button>
    <button type="submit" formaction="/transcribe.docx">Download as .docx</button>
  </p>
</form>
</body>
</html>
`))

var resultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Transcript</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2em auto; }
pre { white-space: pre-wrap; background: #f6f6f6; padding: 1em; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Transcript</h1>
{{if .SegmentErrors}}
<p class="error">Some segments could not be transcribed and were skipped:</p>
<ul class="error">
{{range .SegmentErrors}}<li>{{.Header}}: {{.Err}}</li>{{end}}
</ul>
{{end}}
{{if .Text}}<pre>{{.Text}}</pre>{{else}}<p>No speech found.</p>{{end}}
<p><a href="/">Transcribe another file</a></p>
</body>
</html>
`))
