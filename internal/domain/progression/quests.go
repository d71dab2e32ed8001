package progression

// PartitionQuests splits the quest list into the set unlocked by the act the
// points resolve to and the set requiring a higher act. Every quest lands in
// exactly one side. Progress is caller-supplied and clamped to 0..100; locked
// quests carry the title of the act that unlocks them.
func (l Ladder) PartitionQuests(points int64, quests []Quest) (QuestPartition, error) {
	act, _, err := l.ResolveAct(points)
	if err != nil {
		return QuestPartition{}, err
	}

	out := QuestPartition{
		Available: make([]AvailableQuest, 0, len(quests)),
		Locked:    make([]LockedQuest, 0),
	}
	for _, q := range quests {
		if q.MinAct <= act.Ordinal {
			out.Available = append(out.Available, AvailableQuest{
				Quest:    q,
				Progress: clampProgress(q.Progress),
			})
			continue
		}
		out.Locked = append(out.Locked, LockedQuest{
			Quest:       q,
			UnlockTitle: l.unlockTitle(q.MinAct),
		})
	}
	return out, nil
}

func (l Ladder) unlockTitle(minAct int) string {
	if unlock, ok := l.ActByOrdinal(minAct); ok {
		return unlock.Title
	}
	// A minAct beyond the configured ladder still needs a label; the final
	// act is the closest truthful answer.
	return l.acts[len(l.acts)-1].Title
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
