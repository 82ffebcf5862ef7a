// Package uelog parses Unreal Engine log files into structured records.
//
// Every engine log entry starts with a bracketed timestamp and thread id:
//
//	[2020.12.14-13.46.03:809][  1]LogTemp: Warning: something happened
//	    continuation lines carry no header and belong to the entry above
//
// The package splits each entry into timestamp, category, severity and
// message body, folding continuation lines into the record they belong to.
// Timestamps carry the fixed UTC offset the engine announces once near the
// start of every log ("Raw Offset: +9:00").
//
// # Basic Usage
//
// To read a log file record by record:
//
//	f, err := os.Open("MyProject.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	p, err := uelog.NewParser(f)
//	if err != nil {
//	    log.Fatal(err) // not an Unreal Engine log
//	}
//	for {
//	    rec, err := p.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%s %s: %s\n", rec.Timestamp, rec.Category, rec.Body)
//	}
//
// ParseFile and ParseReader read everything at once:
//
//	records, err := uelog.ParseFile("MyProject.log")
//
// # Watching a live log
//
// Watcher follows a file the engine is still writing:
//
//	w, err := uelog.NewWatcher(path, uelog.WithFlushInterval(time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	records, errs, err := w.Watch(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for rec := range records {
//	    fmt.Println(rec.Body)
//	}
//	_ = errs
//
// # Custom matching rules
//
// The [rules] subpackage matches YAML-defined regular expressions against
// decoded records, for tagging and field extraction without writing code.
//
// # Failure model
//
// Construction fails with *InitError when no timezone announcement exists;
// such input is not a recognized engine log. After construction, Read
// never fails on malformed content: header-shaped lines without a category
// are engine notices and are skipped, and io.EOF is the only normal end of
// the stream.
package uelog
