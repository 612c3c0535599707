// Command taskpooldemo builds a small diamond-shaped dependency graph —
// one root task, two tasks depending on it, and a final task depending on
// both — and prints each result as it resolves.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joeycumines/go-taskpool"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool := taskpool.New[string](2)
	go func() {
		if err := pool.Run(ctx); err != nil {
			log.Printf("taskpooldemo: driver loop stopped: %v", err)
		}
	}()

	root := pool.SubmitTask(func(ctx context.Context) (string, error) {
		return "root", nil
	})

	left := pool.SubmitDependentTask(root, func(ctx context.Context) (string, error) {
		return "left", nil
	})
	right := pool.SubmitDependentTask(root, func(ctx context.Context) (string, error) {
		return "right", nil
	})

	join := pool.SubmitTask(func(ctx context.Context) (string, error) {
		return "join", nil
	})
	pool.SequenceTasks(left, join)
	pool.SequenceTasks(right, join)

	for _, h := range []taskpool.Handle{root, left, right, join} {
		v, err := pool.WaitTask(ctx, h)
		if err != nil {
			fmt.Printf("%s: error: %v\n", h, err)
			continue
		}
		fmt.Printf("%s: %s\n", h, v)
	}
}
