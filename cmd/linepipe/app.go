package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/go-linepipe/internal/batch"
	"github.com/askiada/go-linepipe/internal/config"
	"github.com/askiada/go-linepipe/internal/selection"
	"github.com/askiada/go-linepipe/pkg/command"
	"github.com/askiada/go-linepipe/pkg/pipeline"
	"github.com/askiada/go-linepipe/pkg/pipeline/drawer"
	"github.com/askiada/go-linepipe/pkg/pipeline/measure"
	"github.com/askiada/go-linepipe/pkg/pipeline/model"
)

const (
	exitOK = iota
	exitError
	exitUsage
)

var ErrNoInput = errors.New("no input: give files or pipe text on stdin")

type app struct {
	stdin           io.Reader
	stdout          io.Writer
	stderr          io.Writer
	stdinIsTerminal func() bool
}

type flags struct {
	configFile string
	check      bool
	cfg        config.Config
}

// helpNotifier prints the first document it receives.
type helpNotifier struct {
	w    io.Writer
	once sync.Once
	done chan struct{}
}

func newHelpNotifier(w io.Writer) *helpNotifier {
	return &helpNotifier{w: w, done: make(chan struct{})}
}

func (n *helpNotifier) Notify(doc command.Document) {
	n.once.Do(func() {
		fmt.Fprint(n.w, doc.Body)
		close(n.done)
	})
}

func (a *app) parseFlags(args []string) (*flags, []string, error) {
	fs := flag.NewFlagSet("linepipe", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: linepipe [flags] 'pipeline' [file...]")
		fmt.Fprintln(fs.Output(), "Run `linepipe help` to list the commands.")
		fs.PrintDefaults()
	}

	f := &flags{}
	defaults := config.Default()

	fs.StringVar(&f.configFile, "config", "", "TOML configuration file")
	fs.BoolVar(&f.check, "check", false, "Only validate the pipeline")
	fs.BoolVar(&f.cfg.InPlace, "w", false, "Rewrite the files instead of printing them")
	fs.StringVar(&f.cfg.Region, "lines", "", "Lines to transform, as N, N:M, N: or :M")
	fs.IntVar(&f.cfg.Concurrency, "j", defaults.Concurrency, "Number of files processed concurrently")
	fs.BoolVar(&f.cfg.Measure, "measure", false, "Print the duration of every stage")
	fs.StringVar(&f.cfg.DOT, "dot", "", "Write the pipeline graph to this DOT file")
	fs.BoolVar(&f.cfg.Verbose, "v", false, "Log progress to stderr")

	err := fs.Parse(args)
	if err != nil {
		return nil, nil, err
	}

	if f.configFile != "" {
		err = f.mergeConfig(fs)
		if err != nil {
			return nil, nil, err
		}
	}

	if fs.NArg() == 0 {
		fs.Usage()

		return nil, nil, errors.New("missing pipeline")
	}

	return f, fs.Args(), nil
}

// mergeConfig loads the configuration file, flags set on the command line win.
func (f *flags) mergeConfig(fs *flag.FlagSet) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "w":
			cfg.InPlace = f.cfg.InPlace
		case "lines":
			cfg.Region = f.cfg.Region
		case "j":
			cfg.Concurrency = f.cfg.Concurrency
		case "measure":
			cfg.Measure = f.cfg.Measure
		case "dot":
			cfg.DOT = f.cfg.DOT
		case "v":
			cfg.Verbose = f.cfg.Verbose
		}
	})

	f.cfg = cfg

	return nil
}

func (a *app) run(args []string) int {
	f, rest, err := a.parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		fmt.Fprintln(a.stderr, "linepipe:", err)

		return exitUsage
	}

	err = f.cfg.Validate()
	if err != nil {
		fmt.Fprintln(a.stderr, "linepipe:", err)

		return exitUsage
	}

	text, files := rest[0], rest[1:]

	if f.check {
		_, err = pipeline.Parse(text, pipeline.ParseCheck())
		if err != nil {
			fmt.Fprintln(a.stderr, "warning:", err)

			return exitError
		}

		return exitOK
	}

	pipe, err := pipeline.Parse(text)
	if err != nil {
		fmt.Fprintln(a.stderr, "error:", err)

		return exitError
	}

	err = a.execute(f.cfg, pipe, files)
	if err != nil {
		fmt.Fprintln(a.stderr, "error:", err)

		if errors.Is(err, ErrNoInput) {
			return exitUsage
		}

		return exitError
	}

	return exitOK
}

func (a *app) execute(cfg config.Config, pipe *pipeline.Pipeline, files []string) error {
	logger := log.New(io.Discard, "linepipe: ", 0)
	if cfg.Verbose {
		logger.SetOutput(a.stderr)
	}

	region, err := cfg.SelectedRegion()
	if err != nil {
		return err
	}

	notifier := newHelpNotifier(a.stderr)
	runnerOpts := []pipeline.RunnerOption{pipeline.RunnerNotifier(notifier)}

	var msr measure.Measure
	if cfg.Measure {
		msr = measure.NewDefaultMeasure()
		runnerOpts = append(runnerOpts, pipeline.RunnerObserver(measure.PipelineMeasure(msr)))
	}

	if cfg.DOT != "" {
		runnerOpts = append(runnerOpts, pipeline.RunnerObserver(drawer.PipelineDrawer(drawer.NewDOTDrawer(cfg.DOT), msr)))
	}

	runner, err := pipeline.NewRunner(pipe, runnerOpts...)
	if err != nil {
		return err
	}

	logger.Printf("pipeline %q, %d file(s)", pipe.String(), len(files))

	if len(files) == 0 {
		err = a.executeStdin(runner, region, hasNotifyStage(pipe))
	} else {
		err = a.executeFiles(cfg, runner, region, logger, files)
	}

	if err != nil {
		return err
	}

	err = runner.Finish()
	if err != nil {
		return err
	}

	if msr != nil {
		a.printMeasure(pipe, msr)
	}

	if hasNotifyStage(pipe) {
		<-notifier.done
	}

	return nil
}

// executeStdin transforms stdin. A terminal is never read, pipelines showing help then run on no line.
func (a *app) executeStdin(runner *pipeline.Runner, region selection.Region, showsHelp bool) error {
	var content []byte

	switch {
	case a.stdinIsTerminal != nil && a.stdinIsTerminal():
		if !showsHelp {
			return ErrNoInput
		}
	default:
		var err error

		content, err = io.ReadAll(a.stdin)
		if err != nil {
			return errors.Wrap(err, "unable to read stdin")
		}
	}

	out, err := batch.Transform(runner, string(content), region)
	if err != nil {
		return err
	}

	_, err = io.WriteString(a.stdout, out)

	return errors.Wrap(err, "unable to write stdout")
}

func (a *app) executeFiles(cfg config.Config, runner *pipeline.Runner, region selection.Region, logger *log.Logger, files []string) error {
	opts := []batch.Option{
		batch.Concurrency(cfg.Concurrency),
		batch.Region(region),
		batch.Logger(logger),
	}
	if cfg.InPlace {
		opts = append(opts, batch.InPlace())
	}

	results, err := batch.Run(context.Background(), runner, files, opts...)
	if err != nil {
		return err
	}

	if cfg.InPlace {
		return nil
	}

	for _, res := range results {
		_, err = io.WriteString(a.stdout, res.Output)
		if err != nil {
			return errors.Wrap(err, "unable to write stdout")
		}
	}

	return nil
}

func (a *app) printMeasure(pipe *pipeline.Pipeline, msr measure.Measure) {
	for i, stage := range pipe.Stages() {
		key := (&model.StageInfo{Index: i + 1, Name: stage.Name, Args: stage.Args}).Key()

		mt := msr.GetMetric(key)
		if mt == nil {
			continue
		}

		fmt.Fprintf(a.stderr, "%s: %d run(s), avg %s, %d line(s) in, %d line(s) out\n",
			key, mt.Runs(), mt.AVGDuration(), mt.LinesIn(), mt.LinesOut())
	}
}

func hasNotifyStage(pipe *pipeline.Pipeline) bool {
	for _, stage := range pipe.Stages() {
		if stage.Kind == command.KindNotify {
			return true
		}
	}

	return false
}
