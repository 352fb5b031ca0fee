package docserver

import (
	"fmt"
	"io"

	"github.com/dreamware/docstore/internal/lrucache"
	"github.com/dreamware/docstore/internal/ringhash"
	"github.com/dreamware/docstore/internal/taskqueue"
)

// Kind identifies which of the two request shapes a Request carries.
type Kind int

const (
	// Edit queues a write to be applied lazily, before the next read.
	Edit Kind = iota
	// Read answers GET_DOCUMENT, draining pending edits first.
	Read
)

// Request is the tagged union of the two operations the document store
// accepts: EDIT(doc_name, doc_content) and GET(doc_name).
type Request struct {
	Kind    Kind
	DocName string
	Content string // meaningful only when Kind == Edit
}

// Response is the structured result of handling a Request: a log line, a
// response text, and the id of the server that produced it. Any field may
// be the empty string (e.g. Text is empty on a cache/store fault).
type Response struct {
	Log      string
	Text     string
	ServerID uint32
}

// Server is a single document-store node: a hot cache, a much larger
// authoritative store, and a pending-edit queue. See doc.go for the
// virtual-node forwarding model.
type Server struct {
	ID      uint32
	Hash    uint32
	Cache   *lrucache.Cache[string] // nil on a virtual node
	Store   *lrucache.Cache[string] // nil on a virtual node
	Queue   *taskqueue.TaskQueue    // nil on a virtual node
	Primary *Server                 // non-nil only on a virtual node
}

// NewServer constructs a primary server. Its hot cache holds cacheSize
// entries; its authoritative store holds cacheSize*1000, per the fixed
// store-to-cache ratio this system is specified with.
func NewServer(id uint32, cacheSize int) *Server {
	return &Server{
		ID:    id,
		Hash:  ringhash.HashUint(id),
		Cache: lrucache.New[string](cacheSize),
		Store: lrucache.New[string](cacheSize*1000),
		Queue: taskqueue.New(taskqueue.DefaultCapacity),
	}
}

// NewVirtualNode constructs a server that forwards all state operations
// to primary while presenting its own id and hash on the ring.
func NewVirtualNode(id uint32, primary *Server) *Server {
	return &Server{
		ID:      id,
		Hash:    ringhash.HashUint(id),
		Primary: primary,
	}
}

// IsVirtual reports whether this server forwards to a primary.
func (s *Server) IsVirtual() bool {
	return s.Primary != nil
}

// resolvePrimary returns the server whose cache/store/queue actually hold
// state: s itself if s is a primary, s.Primary otherwise.
func (s *Server) resolvePrimary() *Server {
	if s.Primary != nil {
		return s.Primary
	}
	return s
}

// PrimaryServer exposes resolvePrimary to other packages (e.g. the ring
// and load balancer) that need to act on the server actually holding
// state without reaching into Server's private forwarding logic.
func (s *Server) PrimaryServer() *Server {
	return s.resolvePrimary()
}

// PrimaryID returns the id of the server that actually owns state: s.ID
// if s is itself a primary, s.Primary.ID otherwise.
func (s *Server) PrimaryID() uint32 {
	return s.resolvePrimary().ID
}

// HandleRequest dispatches req and returns the resulting Response. The
// returned ServerID is always s.ID, even when s is a virtual node acting
// on its primary's state — a read hit a replica, but the data lives on
// the primary.
func (s *Server) HandleRequest(req Request, logSink io.Writer) Response {
	switch req.Kind {
	case Edit:
		return s.handleEdit(req)
	case Read:
		return s.handleRead(req, logSink)
	default:
		panic(fmt.Sprintf("docserver: unknown request kind %d", req.Kind))
	}
}

func (s *Server) handleEdit(req Request) Response {
	q := s.resolvePrimary().Queue
	q.Enqueue(taskqueue.EditRequest{DocName: req.DocName, Content: req.Content})
	return Response{
		Log:      formatLogLazyExec(q.Size()),
		Text:     formatMsgA("EDIT", req.DocName),
		ServerID: s.ID,
	}
}

func (s *Server) handleRead(req Request, logSink io.Writer) Response {
	p := s.resolvePrimary()
	p.Drain(logSink)
	resp := p.getDocument(req.DocName)
	resp.ServerID = s.ID
	return resp
}

// Drain executes every queued edit, in FIFO order, against this server's
// primary store, printing each resulting response to logSink before
// continuing. It is called both at the start of every read and before a
// donor's keys are redistributed during a topology change, so that no
// stale state is ever observed or moved.
//
// logSink may be nil, in which case drained responses are computed but
// not printed — used by callers (such as balancer redistribution) that
// only need the side effect of draining, not a transcript.
func (s *Server) Drain(logSink io.Writer) {
	p := s.resolvePrimary()
	for {
		task, ok := p.Queue.Dequeue()
		if !ok {
			break
		}
		resp := p.editDocument(task.DocName, task.Content)
		if logSink != nil {
			fmt.Fprintln(logSink, RenderResponse(resp))
		}
	}
}

// editDocument applies a single queued edit to this primary's cache and
// store, branching on whether the document is already cached, already
// stored, or neither. p must be a primary (never called with p.Primary
// set).
func (p *Server) editDocument(name, content string) Response {
	switch {
	case p.Cache.Contains(name):
		p.Cache.Put(name, content)
		p.Store.Put(name, content)
		return Response{Log: formatLogHit(name), Text: formatMsgB(name), ServerID: p.ID}

	case p.Store.Contains(name):
		evictedKey, evicted := p.Cache.Put(name, content)
		p.Store.Put(name, content)
		return Response{Log: missOrEvictLog(name, evictedKey, evicted), Text: formatMsgB(name), ServerID: p.ID}

	default:
		p.Store.Put(name, content)
		evictedKey, evicted := p.Cache.Put(name, content)
		return Response{Log: missOrEvictLog(name, evictedKey, evicted), Text: formatMsgC(name), ServerID: p.ID}
	}
}

// getDocument answers GET_DOCUMENT against this primary's cache, falling
// back to store. ServerID is left zero; callers (HandleRequest) are
// responsible for stamping the recipient's id per the virtual-node
// forwarding rule.
func (p *Server) getDocument(name string) Response {
	if v, ok := p.Cache.Get(name); ok {
		return Response{Log: formatLogHit(name), Text: v}
	}
	if v, ok := p.Store.Get(name); ok {
		evictedKey, evicted := p.Cache.Put(name, v)
		return Response{Log: missOrEvictLog(name, evictedKey, evicted), Text: v}
	}
	return Response{Log: formatLogFault(name), Text: ""}
}

func missOrEvictLog(name, evictedKey string, evicted bool) string {
	if evicted {
		return formatLogEvict(name, evictedKey)
	}
	return formatLogMiss(name)
}

// Free releases a primary's owned state. It is a no-op on a virtual node,
// which owns nothing of its own. Queued edits are dropped without being
// executed.
func (s *Server) Free() {
	if s.IsVirtual() {
		return
	}
	s.Cache = nil
	s.Store = nil
	s.Queue = nil
}
