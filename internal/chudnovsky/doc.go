// Package chudnovsky computes π by summing the Chudnovsky series
//
//	1/π = 12 Σ (-1)^k (6k)! (13591409 + 545140134k) / ((3k)! (k!)³ 640320^(3k+3/2))
//
// in the rearranged form π = C / S with C = 426880·√10005 and
// S = Σ M_k·L_k / X_k. Each term adds roughly 14 correct decimal digits.
//
// Two engines are provided. The sequential engine advances the recurrence
// one term at a time and raises the working precision on a fixed schedule.
// The chunked engine splits each batch of terms across workers, each of which
// reconstructs the series state at its first term in closed form.
//
// Engines run until their cancellation token is set and report
// intermediate approximations to a progress.Reporter whenever the precision
// is raised.
package chudnovsky
