package cli

import (
	"quiz-battle-service/internal/domain"
	"quiz-battle-service/internal/infra/memory"
)

// defaultQuestionBank is the built-in bank used when no database is
// configured; swap in the Postgres loader for a managed question set.
func defaultQuestionBank() map[string]memory.StaticTopic {
	return map[string]memory.StaticTopic{
		"arrays": {
			Name:       "Arrays & Strings",
			Difficulty: 1,
			Questions: []domain.Question{
				{ID: "arr1", Prompt: "What is the time complexity of accessing an array element by index?", Options: []string{"O(1)", "O(n)", "O(log n)", "O(n²)"}, Correct: "O(1)", XP: 10, Difficulty: 1},
				{ID: "arr2", Prompt: "What is the space complexity of an array with n elements?", Options: []string{"O(1)", "O(n)", "O(log n)", "O(n²)"}, Correct: "O(n)", XP: 10, Difficulty: 1},
				{ID: "arr4", Prompt: "Time complexity of Kadane's algorithm?", Options: []string{"O(n)", "O(n²)", "O(n log n)", "O(2^n)"}, Correct: "O(n)", XP: 20, Difficulty: 2},
				{ID: "arr6", Prompt: "What does the two-pointer technique optimize?", Options: []string{"Space complexity", "Time complexity", "Both", "Cache performance"}, Correct: "Both", XP: 15, Difficulty: 2},
				{ID: "arr7", Prompt: "Best way to rotate array by k positions?", Options: []string{"One by one", "Reverse algorithm", "Extra array", "Recursion"}, Correct: "Reverse algorithm", XP: 20, Difficulty: 2},
				{ID: "arr8", Prompt: "Sliding window technique is best for?", Options: []string{"Sorting", "Subarray problems", "Searching", "Insertion"}, Correct: "Subarray problems", XP: 15, Difficulty: 2},
			},
		},
		"linkedlists": {
			Name:       "Linked Lists",
			Difficulty: 2,
			Questions: []domain.Question{
				{ID: "ll1", Prompt: "Time complexity to insert at head of linked list?", Options: []string{"O(1)", "O(n)", "O(log n)", "O(n²)"}, Correct: "O(1)", XP: 10, Difficulty: 1},
				{ID: "ll2", Prompt: "How to detect cycle in linked list?", Options: []string{"Hash Set", "Floyd's Algorithm", "Both work", "Stack"}, Correct: "Both work", XP: 20, Difficulty: 2},
				{ID: "ll4", Prompt: "Find middle of linked list in one pass?", Options: []string{"Count nodes", "Two pointers", "Recursion", "Array conversion"}, Correct: "Two pointers", XP: 15, Difficulty: 2},
				{ID: "ll5", Prompt: "Merge two sorted linked lists time complexity?", Options: []string{"O(m+n)", "O(m*n)", "O(log(m+n))", "O(min(m,n))"}, Correct: "O(m+n)", XP: 20, Difficulty: 2},
				{ID: "ll6", Prompt: "LRU Cache uses which data structures?", Options: []string{"Array only", "HashMap + DoublyLinkedList", "Tree only", "Stack + Queue"}, Correct: "HashMap + DoublyLinkedList", XP: 30, Difficulty: 3},
				{ID: "ll8", Prompt: "Skip List average search time?", Options: []string{"O(n)", "O(log n)", "O(1)", "O(n²)"}, Correct: "O(log n)", XP: 25, Difficulty: 3},
			},
		},
		"stacks_queues": {
			Name:       "Stacks & Queues",
			Difficulty: 2,
			Questions: []domain.Question{
				{ID: "sq1", Prompt: "Stack follows which principle?", Options: []string{"FIFO", "LIFO", "LRU", "Random"}, Correct: "LIFO", XP: 10, Difficulty: 1},
				{ID: "sq3", Prompt: "Balanced parentheses problem uses?", Options: []string{"Queue", "Stack", "Array", "Tree"}, Correct: "Stack", XP: 15, Difficulty: 1},
				{ID: "sq4", Prompt: "Monotonic stack is used for?", Options: []string{"Sorting", "Next greater element", "BFS", "Hashing"}, Correct: "Next greater element", XP: 25, Difficulty: 3},
				{ID: "sq6", Prompt: "Min Stack - get minimum in?", Options: []string{"O(n)", "O(log n)", "O(1)", "O(n²)"}, Correct: "O(1)", XP: 20, Difficulty: 2},
				{ID: "sq7", Prompt: "Priority Queue typically implemented using?", Options: []string{"Array", "Linked List", "Heap", "Hash Table"}, Correct: "Heap", XP: 20, Difficulty: 2},
				{ID: "sq10", Prompt: "Sliding window maximum uses?", Options: []string{"Stack", "Deque", "Heap", "Array"}, Correct: "Deque", XP: 30, Difficulty: 3},
			},
		},
		"trees": {
			Name:       "Trees & Heaps",
			Difficulty: 3,
			Questions: []domain.Question{
				{ID: "t1", Prompt: "Height of balanced binary tree with n nodes?", Options: []string{"O(n)", "O(log n)", "O(1)", "O(n²)"}, Correct: "O(log n)", XP: 15, Difficulty: 2},
				{ID: "t2", Prompt: "Binary Search Tree worst case search?", Options: []string{"O(1)", "O(log n)", "O(n)", "O(n²)"}, Correct: "O(n)", XP: 15, Difficulty: 2},
				{ID: "t5", Prompt: "B-Tree is optimized for?", Options: []string{"Memory", "Disk I/O", "Cache", "Network"}, Correct: "Disk I/O", XP: 25, Difficulty: 3},
				{ID: "t6", Prompt: "Inorder traversal of BST gives?", Options: []string{"Random order", "Sorted order", "Reverse order", "Level order"}, Correct: "Sorted order", XP: 15, Difficulty: 1},
				{ID: "t8", Prompt: "Segment Tree query time?", Options: []string{"O(n)", "O(log n)", "O(1)", "O(n²)"}, Correct: "O(log n)", XP: 25, Difficulty: 3},
				{ID: "t9", Prompt: "Trie is best for?", Options: []string{"Numbers", "Strings/Prefixes", "Graphs", "Sorting"}, Correct: "Strings/Prefixes", XP: 20, Difficulty: 2},
			},
		},
		"graphs": {
			Name:       "Graphs",
			Difficulty: 3,
			Questions: []domain.Question{
				{ID: "g1", Prompt: "DFS space complexity?", Options: []string{"O(V)", "O(E)", "O(V+E)", "O(V²)"}, Correct: "O(V)", XP: 15, Difficulty: 2},
				{ID: "g2", Prompt: "Dijkstra fails on?", Options: []string{"Cycles", "Negative edges", "Dense graphs", "DAGs"}, Correct: "Negative edges", XP: 20, Difficulty: 2},
				{ID: "g4", Prompt: "Floyd-Warshall finds?", Options: []string{"MST", "Shortest path", "All pairs shortest path", "Cycles"}, Correct: "All pairs shortest path", XP: 25, Difficulty: 3},
				{ID: "g5", Prompt: "Kruskal's algorithm uses?", Options: []string{"DFS", "BFS", "Union-Find", "Dynamic Programming"}, Correct: "Union-Find", XP: 25, Difficulty: 2},
				{ID: "g6", Prompt: "Topological sort works on?", Options: []string{"Any graph", "DAG only", "Cyclic graphs", "Trees only"}, Correct: "DAG only", XP: 20, Difficulty: 2},
				{ID: "g11", Prompt: "Max flow problem solved by?", Options: []string{"Dijkstra", "Ford-Fulkerson", "Kruskal", "DFS"}, Correct: "Ford-Fulkerson", XP: 25, Difficulty: 3},
			},
		},
		"sorting": {
			Name:       "Sorting Algorithms",
			Difficulty: 2,
			Questions: []domain.Question{
				{ID: "s1", Prompt: "Quicksort average case?", Options: []string{"O(n²)", "O(n log n)", "O(n)", "O(log n)"}, Correct: "O(n log n)", XP: 15, Difficulty: 1},
				{ID: "s2", Prompt: "Which sort is stable?", Options: []string{"Quick Sort", "Heap Sort", "Merge Sort", "Selection Sort"}, Correct: "Merge Sort", XP: 20, Difficulty: 2},
				{ID: "s3", Prompt: "Best sorting for linked list?", Options: []string{"Quick Sort", "Merge Sort", "Heap Sort", "Bubble Sort"}, Correct: "Merge Sort", XP: 20, Difficulty: 2},
				{ID: "s4", Prompt: "Counting sort time complexity?", Options: []string{"O(n log n)", "O(n + k)", "O(n²)", "O(n)"}, Correct: "O(n + k)", XP: 20, Difficulty: 2},
				{ID: "s5", Prompt: "Which uses O(1) extra space?", Options: []string{"Merge Sort", "Heap Sort", "Counting Sort", "Radix Sort"}, Correct: "Heap Sort", XP: 20, Difficulty: 2},
				{ID: "s6", Prompt: "Tim Sort combines?", Options: []string{"Merge + Insertion", "Quick + Heap", "Bubble + Selection", "Count + Radix"}, Correct: "Merge + Insertion", XP: 25, Difficulty: 3},
			},
		},
	}
}
