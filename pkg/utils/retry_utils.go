package utils

import "time"

// Retry runs do up to retryTime times, sleeping sleep milliseconds
// between attempts, and stops on the first success.
func Retry(do func() error, retryTime int, sleep int) {
	for i := 0; i < retryTime; i++ {
		err := do()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(sleep) * time.Millisecond)
	}
}
