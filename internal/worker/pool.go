// Package worker drains the assessment-archive queue into Postgres. Archiving
// is fire-and-forget from the chat path; a full queue or a down database
// never delays a response.
package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"finmitra-backend/internal/models"
	"finmitra-backend/internal/repository"
)

const archiveQueue = "queue:assessment-archive"

// Enqueuer pushes completed assessments onto the archive queue. It satisfies
// the orchestrator's Archiver interface.
type Enqueuer struct {
	redis *redis.Client
}

func NewEnqueuer(redisClient *redis.Client) *Enqueuer {
	return &Enqueuer{redis: redisClient}
}

func (e *Enqueuer) Enqueue(ctx context.Context, a models.Assessment) error {
	blob, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return e.redis.RPush(ctx, archiveQueue, blob).Err()
}

// Pool runs N goroutines blocking on the archive queue.
type Pool struct {
	redis       *redis.Client
	repo        *repository.AssessmentRepo
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, repo *repository.AssessmentRepo, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		repo:        repo,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d archive worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Archive worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with a short timeout so the stop channel is rechecked.
		result, err := p.redis.BLPop(ctx, 10*time.Second, archiveQueue).Result()
		if err != nil {
			continue
		}
		if len(result) < 2 {
			continue
		}

		var a models.Assessment
		if err := json.Unmarshal([]byte(result[1]), &a); err != nil {
			log.Printf("Archive worker %d: failed to parse assessment: %v", id, err)
			continue
		}

		writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		if err := p.repo.Create(writeCtx, &a); err != nil {
			log.Printf("Archive worker %d: failed to store assessment %s: %v", id, a.ID, err)
			// Put it back for a later attempt instead of dropping it.
			if blob, merr := json.Marshal(a); merr == nil {
				p.redis.RPush(ctx, archiveQueue, blob)
			}
			cancel()
			time.Sleep(2 * time.Second)
			continue
		}
		cancel()

		log.Printf("Archive worker %d: stored %s assessment %s (session %s)", id, a.Kind, a.ID, a.SessionID)
	}
}
