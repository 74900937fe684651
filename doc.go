// Package pagesnap loads a web page in headless Chrome, prints the rendered
// page to PDF once loading completes, and uploads the PDF to a file-hosting
// endpoint as a single-part multipart/form-data POST.
//
// # Quick start
//
//	st, err := pagesnap.Capture(ctx, pagesnap.DefaultSourceURL)
//	if err != nil {
//	    log.Fatal(err) // the browser could not start
//	}
//	fmt.Println(st.Response)
//
// # Sessions
//
// A [Session] runs the chain load → snapshot → upload on one goroutine and
// publishes a [State] after every step:
//
//	view, err := pagesnap.NewChromeView(pagesnap.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer view.Close()
//
//	s := pagesnap.NewSession(view, pagesnap.WithLogger(logger))
//	for st := range s.Start(ctx, url) {
//	    // st.LoadSucceeded, st.LoadFailed, st.Uploaded, st.Response
//	}
//
// Failures never surface as errors from a session. A failed load sets
// LoadFailed, a failed snapshot stops the chain, and a failed upload leaves
// Response empty. Each is logged and recorded in State.Err.
//
// # Uploads
//
// [Uploader] posts to [DefaultUploadURL] with one part named "file",
// filename "file.pdf" and content type application/pdf, delimited by a
// "Boundary-<UUID>" boundary. The response body is returned verbatim.
// [EncodeMultipart] builds the body on its own.
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload].
package pagesnap
