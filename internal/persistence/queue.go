package persistence

import "context"

// opKind discriminates a queued request.
type opKind int

const (
	opListRoot opKind = iota
	opReadFile
	opWriteFile
	opCreateFile
	opCreateFolder
	opRename
	opMove
	opDelete
)

type request struct {
	op         opKind
	parent     Handle
	handle     Handle
	name       string
	newName    string
	data       []byte
	root       string
	sourcePath string
	targetPath string
	isDir      bool
	reply      chan response
}

type response struct {
	tree   Tree
	data   []byte
	handle Handle
	err    error
}

// Queue runs an Adapter on its own goroutine and answers requests over
// channels, giving a host an asynchronous request/response shape even
// when the underlying Adapter (like Memory) would otherwise answer
// synchronously. Modeled on a classic single-worker request queue,
// generalized to work with any persistence.Adapter.
type Queue struct {
	adapter Adapter
	reqs    chan request
	done    chan struct{}
}

// NewQueue starts a worker goroutine serving adapter. Call Close when
// the host is done with it.
func NewQueue(adapter Adapter) *Queue {
	q := &Queue{adapter: adapter, reqs: make(chan request, 16), done: make(chan struct{})}
	go q.run()
	return q
}

// Close stops the worker goroutine. Requests already in flight still
// complete; requests submitted after Close panics, matching the
// convention that misuse of a closed worker is a programmer
// error, not a runtime condition.
func (q *Queue) Close() {
	close(q.reqs)
	<-q.done
}

func (q *Queue) run() {
	defer close(q.done)
	ctx := context.Background()
	for req := range q.reqs {
		req.reply <- q.serve(ctx, req)
	}
}

func (q *Queue) serve(ctx context.Context, req request) response {
	switch req.op {
	case opListRoot:
		tree, err := q.adapter.ListRoot(ctx)
		return response{tree: tree, err: err}
	case opReadFile:
		data, err := q.adapter.ReadFile(ctx, req.handle)
		return response{data: data, err: err}
	case opWriteFile:
		return response{err: q.adapter.WriteFile(ctx, req.handle, req.data)}
	case opCreateFile:
		h, err := q.adapter.CreateFile(ctx, req.parent, req.name)
		return response{handle: h, err: err}
	case opCreateFolder:
		h, err := q.adapter.CreateFolder(ctx, req.parent, req.name)
		return response{handle: h, err: err}
	case opRename:
		return response{err: q.adapter.Rename(ctx, req.parent, req.name, req.newName, req.isDir)}
	case opMove:
		return response{err: q.adapter.Move(ctx, req.root, req.sourcePath, req.targetPath, req.isDir)}
	case opDelete:
		return response{err: q.adapter.Delete(ctx, req.parent, req.name, req.isDir)}
	default:
		return response{err: Unknown(nil)}
	}
}

func (q *Queue) submit(req request) response {
	req.reply = make(chan response, 1)
	q.reqs <- req
	return <-req.reply
}

// ListRoot queues a ListRoot call and blocks for its result.
func (q *Queue) ListRoot(ctx context.Context) (Tree, error) {
	r := q.submit(request{op: opListRoot})
	return r.tree, r.err
}

// ReadFile queues a ReadFile call and blocks for its result.
func (q *Queue) ReadFile(ctx context.Context, h Handle) ([]byte, error) {
	r := q.submit(request{op: opReadFile, handle: h})
	return r.data, r.err
}

// WriteFile queues a WriteFile call and blocks for its result.
func (q *Queue) WriteFile(ctx context.Context, h Handle, data []byte) error {
	return q.submit(request{op: opWriteFile, handle: h, data: data}).err
}

// CreateFile queues a CreateFile call and blocks for its result.
func (q *Queue) CreateFile(ctx context.Context, parent Handle, name string) (Handle, error) {
	r := q.submit(request{op: opCreateFile, parent: parent, name: name})
	return r.handle, r.err
}

// CreateFolder queues a CreateFolder call and blocks for its result.
func (q *Queue) CreateFolder(ctx context.Context, parent Handle, name string) (Handle, error) {
	r := q.submit(request{op: opCreateFolder, parent: parent, name: name})
	return r.handle, r.err
}

// Rename queues a Rename call and blocks for its result.
func (q *Queue) Rename(ctx context.Context, parent Handle, oldName, newName string, isDir bool) error {
	return q.submit(request{op: opRename, parent: parent, name: oldName, newName: newName, isDir: isDir}).err
}

// Move queues a Move call and blocks for its result.
func (q *Queue) Move(ctx context.Context, root, sourcePath, targetFolderPath string, isDir bool) error {
	return q.submit(request{op: opMove, root: root, sourcePath: sourcePath, targetPath: targetFolderPath, isDir: isDir}).err
}

// Delete queues a Delete call and blocks for its result.
func (q *Queue) Delete(ctx context.Context, parent Handle, name string, isDir bool) error {
	return q.submit(request{op: opDelete, parent: parent, name: name, isDir: isDir}).err
}
